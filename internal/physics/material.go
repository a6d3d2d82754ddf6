package physics

// Material tags a body for contact-pair lookup.
type Material struct {
	Name string
}

func NewMaterial(name string) *Material {
	return &Material{Name: name}
}

// ContactMaterial defines how two materials interact on contact.
// Restitution: 0 = no bounce, 1 = perfect bounce.
// Friction: Coulomb coefficient, 0 = ice.
type ContactMaterial struct {
	A           *Material
	B           *Material
	Restitution float64
	Friction    float64
}

func NewContactMaterial(a, b *Material, restitution, friction float64) *ContactMaterial {
	return &ContactMaterial{
		A:           a,
		B:           b,
		Restitution: restitution,
		Friction:    friction,
	}
}

// Matches reports whether the pairing applies to a and b, in either order.
func (c *ContactMaterial) Matches(a, b *Material) bool {
	return (c.A == a && c.B == b) || (c.A == b && c.B == a)
}

// DefaultContactMaterial applies when no pairing matches.
var DefaultContactMaterial = ContactMaterial{
	Restitution: 0,
	Friction:    0.3,
}
