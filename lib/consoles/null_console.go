package consoles

type nullConsole struct {
}

// NewNullConsole discards everything. Used when the caller does not want output.
func NewNullConsole() Console {
	return &nullConsole{}
}

func (n *nullConsole) Printf(string, ...any) {
}

func (n *nullConsole) Debugf(string, ...any) {
}

func (n *nullConsole) PushPrefix(string, ...any) {
}

func (n *nullConsole) PopPrefix() {
}
