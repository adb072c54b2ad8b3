package main

import (
  "flag"
  "fmt"
  "log/slog"
  "os"

  "github.com/HamletTheHamster/emulator-paper-plots/config"
  "github.com/HamletTheHamster/emulator-paper-plots/figure"
  "github.com/HamletTheHamster/emulator-paper-plots/report"
)

func main() {

  cfgPath, plotDir, dataRoot, preview, verbose := flags()

  level := slog.LevelInfo
  if verbose {
    level = slog.LevelDebug
  }
  logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

  if err := run(logger, cfgPath, plotDir, dataRoot, preview); err != nil {
    logger.Error("plots not made", "err", err)
    os.Exit(1)
  }
}

func run(
  logger *slog.Logger,
  cfgPath, plotDir, dataRoot string,
  preview bool,
) (
  error,
) {

  cfg, err := config.Load(cfgPath)
  if err != nil {
    return err
  }
  if plotDir != "" {
    cfg.PlotDir = plotDir
  }
  if dataRoot != "" {
    cfg.DataRoot = dataRoot
  }
  if err := cfg.Validate(); err != nil {
    return err
  }
  if preview && !figure.PreviewEnabled {
    return figure.ErrNoPreview
  }
  logger.Debug("config", "plot_dir", cfg.PlotDir, "data_root", cfg.DataRoot, "seed", cfg.Seed)

  g := report.New(cfg, logger)
  g.SetPreview(preview)

  runErr := g.Run()
  if err := g.WriteLog(); err != nil {
    logger.Warn("log.txt not written", "err", err)
  }
  if runErr != nil {
    return runErr
  }

  logger.Info("done", "figures", len(g.Outputs()), "plot_dir", cfg.PlotDir)
  return nil
}

func flags() (
  string, string, string, bool, bool,
) {

  var cfgPath, plotDir, dataRoot string
  var preview, verbose bool

  flag.StringVar(&cfgPath, "config", "", "HCL file overriding the default locations")
  flag.StringVar(&plotDir, "plots", "", "directory the figures are written to")
  flag.StringVar(&dataRoot, "data", "", "directory relative data paths are resolved against")
  flag.BoolVar(&preview, "preview", false, "also show every figure in gnuplot")
  flag.BoolVar(&verbose, "v", false, "debug logging")
  flag.Parse()

  if flag.NArg() > 0 {
    fmt.Fprintln(os.Stderr, "unexpected arguments:", flag.Args())
    flag.Usage()
    os.Exit(2)
  }

  return cfgPath, plotDir, dataRoot, preview, verbose
}
