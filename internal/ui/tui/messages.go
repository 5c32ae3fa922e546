package tui

type configRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type configInitDoneMsg struct {
	path string
	err  error
}
