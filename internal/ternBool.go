package internal

type ternBool bool

func (b ternBool) String() string {
	if b {
		return "true"
	}
	return "false"
}
