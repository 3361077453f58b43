package entity

type Unit struct {
	After    string
	Desc     string
	Exec     string
	Options  map[string]string
	Type     string
	User     string
	WantedBy string
}

type Timer struct {
	Calendar   string
	Desc       string
	Persistent bool
}

// Service describes one systemd unit to install: either a service (Unit set)
// or a timer (Timer set). Enable and Start are only honored when affirmative;
// AdvisoryStart downgrades a start failure to a warning.
type Service struct {
	AdvisoryStart bool
	Enable        bool
	Name          string
	Start         bool
	Timer         *Timer
	Unit          *Unit
}

func (s Service) FileName() string {
	if s.Timer != nil {
		return s.Name + ".timer"
	}
	return s.Name + ".service"
}
