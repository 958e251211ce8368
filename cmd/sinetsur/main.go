package main

import (
	"sinetsur-notifier/cmd/sinetsur/commands"
	"sinetsur-notifier/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
