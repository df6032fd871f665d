package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fzft/go-resp-decode/cmd"
)

func main() {
	cli := cmd.NewCli(RespGitSHA1(), RespGitDirty(), RespBuildIdRaw())
	if err := cli.Run(os.Args[1:]); err != nil {
		if errors.Is(err, cmd.ErrUsage) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
