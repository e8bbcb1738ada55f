package input

// Key identifies a keyboard key the controller understands. Hosts translate
// their own key codes into these.
type Key string

const (
	KeyUp     Key = "w"
	KeyDown   Key = "s"
	KeyLeft   Key = "a"
	KeyRight  Key = "d"
	KeyReroll Key = "q"
	KeyTheme  Key = "e"
	KeyReset  Key = "r"
	KeyFreeze Key = "f"
)

// direction is the (x, y) axis contribution of a directional key.
var direction = map[Key][2]float64{
	KeyUp:    {1, 0},
	KeyDown:  {-1, 0},
	KeyLeft:  {0, -1},
	KeyRight: {0, 1},
}

// IsDirectional reports whether k rotates the cube.
func (k Key) IsDirectional() bool {
	_, ok := direction[k]
	return ok
}
