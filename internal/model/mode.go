package model

// Canonical contribution types written by the normal-mode analysis.
const (
	ContributionBond    = "BOND"
	ContributionAngle   = "ANGLE"
	ContributionOut     = "OUT"
	ContributionTorsion = "TORSION"
)

// CanonicalContributionTypes lists the count columns in display order.
var CanonicalContributionTypes = []string{
	ContributionBond,
	ContributionAngle,
	ContributionOut,
	ContributionTorsion,
}

// Contribution is one internal-coordinate component of a normal mode.
type Contribution struct {
	Type   string   // as written in the report, case preserved
	Atoms  []string
	Weight float64 // fraction in [0,1]
}

// Mode is a vibrational normal mode read from a merged report.
type Mode struct {
	Contributions []Contribution
	Index         int
	Frequency     float64
	Intensity     float64
}
