package internal

import (
	"os"

	"github.com/op/go-logging"
)

var Log = logging.MustGetLogger("checkin-setup")

const logFormat = `%{color}%{time:15:04:05} %{level:.7s}%{color:reset} %{message}`

func InitLogging(level int) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(logFormat)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(level), "")
	Log.SetBackend(leveled)
}
