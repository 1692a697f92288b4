package main

import "AutomobileDashboard/src/cmd"

func main() {
	cmd.Execute()
}
