package cmd

import "github.com/google/subcommands"

// Commands lists the subcommands in the order they show in help.
// A main package registers them all and Executes the selected one.
var Commands = []subcommands.Command{
	&analyzeCmd{},
	&summaryCmd{},
	&returnsCmd{},
	&exposureCmd{},
	&importHoldingsCmd{},
	&assistCmd{},
	&topicCmd{},
}
