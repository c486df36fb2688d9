// Package stat defines the schema for named pet attributes.
// This package is PURE and must NOT import any infrastructure packages (network, storage, platform).
package stat

// Mode selects how a mutation combines with the current value.
type Mode int

const (
	// ModeAdd adds the amount to the current value before clamping.
	ModeAdd Mode = iota
	// ModeSet replaces the current value before clamping.
	ModeSet
)

// Definition is the schema row for one named stat. Stats are data, not code:
// new attributes are added by inserting a Definition, never by changing engine logic.
type Definition struct {
	ID              int64  `json:"def_id"`
	Name            string `json:"stat_name"`
	DefaultValue    int    `json:"default_value"`
	Cap             *int   `json:"cap"`              // nil = unbounded above (e.g. money)
	CooldownSeconds *int   `json:"cooldown_seconds"` // nil = restoring actions never rate-limited
	DecayAmount     int    `json:"decay_amount"`     // 0 = no passive decay
	DisplayName     string `json:"display_name"`
}

// HasCap reports whether the stat is bounded above.
func (d Definition) HasCap() bool {
	return d.Cap != nil
}

// Decays reports whether the sweep ages this stat.
func (d Definition) Decays() bool {
	return d.DecayAmount > 0
}

// Clamp bounds a candidate value to [0, cap]. The floor is always 0;
// only the ceiling is optional.
func (d Definition) Clamp(value int) int {
	if value < 0 {
		return 0
	}
	if d.Cap != nil && value > *d.Cap {
		return *d.Cap
	}
	return value
}

// Apply computes the clamped result of a mutation against the current value.
func (d Definition) Apply(current, amount int, mode Mode) int {
	switch mode {
	case ModeSet:
		return d.Clamp(amount)
	default:
		return d.Clamp(current + amount)
	}
}

// IntPtr is a convenience for building Definitions with optional fields.
func IntPtr(v int) *int {
	return &v
}
