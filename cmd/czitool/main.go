// czitool inspects and exports the contents of Zeiss CZI containers.
//
// Usage:
//
//	czitool info [--format text|json|yaml] <file>
//	czitool xml [--indent n] <file>
//	czitool axes [--all] <file>
//	czitool hash <file>
//	czitool dump [--cell n] [--codec name] [--out dir] <file>
package main

import (
	"fmt"
	"os"

	"github.com/arloliu/zisraw/cmd/czitool/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "czitool:", err)
		os.Exit(1)
	}
}
