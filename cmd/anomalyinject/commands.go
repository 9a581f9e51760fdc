package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/synaptecltd/virtualanomaly/anomaly"
	"github.com/synaptecltd/virtualanomaly/mathfuncs"
	"github.com/synaptecltd/virtualanomaly/noise"
	"github.com/synaptecltd/virtualanomaly/spectral"
)

// settings is the layout of the config file.
type settings struct {
	Transforms anomaly.Config `mapstructure:"transforms"`
}

type applyOptions struct {
	input         string
	output        string
	synthetic     string
	psd           bool
	sampleRate    float64
	segmentLength int
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "anomalyinject",
		Short:         "Inject synthetic anomalies into one-dimensional signals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "yaml file with the list of transforms")
	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))

	root.AddCommand(newApplyCmd(v), newKernelsCmd())
	return root
}

func newApplyCmd(v *viper.Viper) *cobra.Command {
	opts := applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the configured transforms and write axis,original,anomalous as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig(v)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.output != "" && opts.output != "-" {
				f, err := os.Create(opts.output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return runApply(config, opts, out)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.input, "input", "", "CSV file of axis,value rows (use - for stdin)")
	flags.StringVar(&opts.output, "output", "-", "CSV output file")
	flags.StringVar(&opts.synthetic, "synthetic", "", "use a synthetic input signal instead of --input: sine or chainsaw")
	flags.BoolVar(&opts.psd, "psd", false, "inject into the Welch power spectral density of the input")
	flags.Float64Var(&opts.sampleRate, "sample-rate", 25, "sample rate used for --psd")
	flags.IntVar(&opts.segmentLength, "segment-length", spectral.DefaultSegmentLength, "Welch segment length used for --psd")
	return cmd
}

func newKernelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List the window kernels and noise distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "kernels:")
			for _, name := range mathfuncs.GetKernelFunctionNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w, "distributions:")
			for _, name := range noise.GetDistributionNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			return nil
		},
	}
}

func loadConfig(v *viper.Viper) (anomaly.Config, error) {
	path := v.GetString("config")
	if path == "" {
		return nil, errors.New("--config is required")
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	decodeHook, err := anomaly.GetDecodeHook()
	if err != nil {
		return nil, err
	}
	var s settings
	if err := v.Unmarshal(&s, viper.DecodeHook(decodeHook)); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if len(s.Transforms) == 0 {
		return nil, fmt.Errorf("config %s has no transforms", path)
	}
	return s.Transforms, nil
}

func runApply(config anomaly.Config, opts applyOptions, w io.Writer) error {
	axis, signal, err := loadSignal(opts)
	if err != nil {
		return err
	}

	if opts.psd {
		axis, signal, err = spectral.Welch(signal, opts.sampleRate, spectral.WithSegmentLength(opts.segmentLength))
		if err != nil {
			return fmt.Errorf("computing psd: %w", err)
		}
	}

	chain, err := config.Build(axis)
	if err != nil {
		return err
	}
	anomalous, err := chain.Apply(signal)
	if err != nil {
		return err
	}
	log.Printf("applied %d transforms to %d samples", chain.Len(), len(signal))

	return writeSeries(w, axis, signal, anomalous)
}

func loadSignal(opts applyOptions) ([]float64, []float64, error) {
	switch {
	case opts.synthetic != "" && opts.input != "":
		return nil, nil, errors.New("--input and --synthetic are mutually exclusive")
	case opts.synthetic != "":
		return syntheticSignal(opts.synthetic)
	case opts.input == "-":
		return readSeries(os.Stdin)
	case opts.input != "":
		f, err := os.Open(opts.input)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		return readSeries(f)
	default:
		return nil, nil, errors.New("one of --input or --synthetic is required")
	}
}
