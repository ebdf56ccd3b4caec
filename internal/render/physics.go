package render

import "github.com/vanshika/recipenet/internal/config"

// Physics is the force-layout and interaction block handed to vis-network. It is
// fixed when a renderer is built.
type Physics struct {
	GravitationalConstant float64
	CentralGravity        float64
	SpringLength          float64
	SpringConstant        float64
	Damping               float64
	AvoidOverlap          float64
	MinVelocity           float64
	Hover                 bool
	TooltipDelay          int
}

// PhysicsFromConfig copies the configured tuning; hover is always on.
func PhysicsFromConfig(cfg config.PhysicsConfig) Physics {
	return Physics{
		GravitationalConstant: cfg.GravitationalConstant,
		CentralGravity:        cfg.CentralGravity,
		SpringLength:          cfg.SpringLength,
		SpringConstant:        cfg.SpringConstant,
		Damping:               cfg.Damping,
		AvoidOverlap:          cfg.AvoidOverlap,
		MinVelocity:           cfg.MinVelocity,
		Hover:                 true,
		TooltipDelay:          cfg.TooltipDelay,
	}
}

// DefaultPhysics is PhysicsFromConfig applied to the default configuration.
func DefaultPhysics() Physics {
	return PhysicsFromConfig(config.Default().Physics)
}

type barnesHutOptions struct {
	GravitationalConstant float64 `json:"gravitationalConstant"`
	CentralGravity        float64 `json:"centralGravity"`
	SpringLength          float64 `json:"springLength"`
	SpringConstant        float64 `json:"springConstant"`
	Damping               float64 `json:"damping"`
	AvoidOverlap          float64 `json:"avoidOverlap"`
}

type visOptions struct {
	Physics struct {
		BarnesHut   barnesHutOptions `json:"barnesHut"`
		MinVelocity float64          `json:"minVelocity"`
	} `json:"physics"`
	Interaction struct {
		Hover        bool `json:"hover"`
		TooltipDelay int  `json:"tooltipDelay"`
	} `json:"interaction"`
	Nodes struct {
		Shape string `json:"shape"`
	} `json:"nodes"`
}

// options lays p out as a vis-network options object.
func (p Physics) options() visOptions {
	var o visOptions
	o.Physics.BarnesHut = barnesHutOptions{
		GravitationalConstant: p.GravitationalConstant,
		CentralGravity:        p.CentralGravity,
		SpringLength:          p.SpringLength,
		SpringConstant:        p.SpringConstant,
		Damping:               p.Damping,
		AvoidOverlap:          p.AvoidOverlap,
	}
	o.Physics.MinVelocity = p.MinVelocity
	o.Interaction.Hover = p.Hover
	o.Interaction.TooltipDelay = p.TooltipDelay
	o.Nodes.Shape = "circle"
	return o
}
