package cli

import (
	"fmt"
	"io"

	"github.com/idelchi/dirsize/internal/config"
	"github.com/idelchi/dirsize/internal/dirsize"
	"github.com/idelchi/dirsize/internal/logging"
)

func logic(options config.Config, stdout, stderr io.Writer) error {
	logger := logging.New(logging.Config{
		Level:  options.LogLevel,
		Pretty: logging.IsTerminal(stderr),
		Output: stderr,
	})

	calc, err := dirsize.New(dirsize.Config{
		Workers: options.Workers,
		FS:      dirsize.OSFileSystem{FollowSymlinks: options.FollowSymlinks},
		Logger:  &logger,
		TopN:    options.Top,
	})
	if err != nil {
		return err
	}

	if _, err := calc.ComputeTotalSize(options.Path); err != nil {
		return err
	}

	stats := calc.Stats()

	switch options.Output {
	case config.OutputJSON:
		return PrintJSON(stats, stdout)
	case config.OutputTable:
		return PrintTable(stats, stdout)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
