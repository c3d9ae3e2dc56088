// Command aggbls generates BLS keys, signs messages and verifies aggregate
// signatures over BLS12-381 or BN254 in either group orientation.
//
// Usage:
//
//	aggbls [global flags] keygen
//	aggbls [global flags] sign --key <hex> <message>
//	aggbls [global flags] aggregate <signature hex>...
//	aggbls [global flags] verify <bundle.yaml>...
//
// Global flags:
//
//	--config       YAML config file; flags given explicitly override it
//	--curve        bls12381 or bn254 (default: bls12381)
//	--orientation  standard (keys in G1) or inverted (keys in G2)
//	--pop          require proofs of possession and allow shared messages
//	--context      message domain separation context
//	--verbosity    log level 0-5 (default: 3)
//	--log.format   text or json (default: text)
//	--workers      parallel verifications (default: number of CPUs)
//	--metrics      print Prometheus metrics to stderr on exit
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/eth2030/aggbls/log"
	"github.com/eth2030/aggbls/metrics"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitUsage   = 2
	exitInvalid = 3
)

var errInvalidSignature = errors.New("invalid signature")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the entry point minus process concerns, returning the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr, rand.Reader)
	err := app.Run(append([]string{"aggbls"}, args...))
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalidSignature):
		fmt.Fprintln(stderr, "Error:", err)
		return exitInvalid
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, errUsage):
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
}

var errUsage = errors.New("usage")

var (
	configFlag      = &cli.StringFlag{Name: "config", Usage: "YAML config file"}
	curveFlag       = &cli.StringFlag{Name: "curve", Value: CurveBLS12381, Usage: "pairing curve (bls12381, bn254)"}
	orientationFlag = &cli.StringFlag{Name: "orientation", Value: OrientationStandard, Usage: "group orientation (standard, inverted)"}
	popFlag         = &cli.BoolFlag{Name: "pop", Usage: "require proofs of possession"}
	contextFlag     = &cli.StringFlag{Name: "context", Usage: "message domain separation context"}
	verbosityFlag   = &cli.IntFlag{Name: "verbosity", Value: 3, Usage: "log level 0-5 (0=silent, 5=debug)"}
	logFormatFlag   = &cli.StringFlag{Name: "log.format", Value: log.FormatText, Usage: "log output format (text, json)"}
	workersFlag     = &cli.IntFlag{Name: "workers", Usage: "parallel verifications (default: number of CPUs)"}
	metricsFlag     = &cli.BoolFlag{Name: "metrics", Usage: "print Prometheus metrics to stderr on exit"}
)

func newApp(stdout, stderr io.Writer, rng io.Reader) *cli.App {
	var scheme Scheme
	var cfg Config
	registry := metrics.NewRegistry()

	app := &cli.App{
		Name:      "aggbls",
		Usage:     "BLS aggregate signature tool",
		Version:   fmt.Sprintf("%s (commit %s)", version, commit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			configFlag, curveFlag, orientationFlag, popFlag, contextFlag,
			verbosityFlag, logFormatFlag, workersFlag, metricsFlag,
		},
		Before: func(c *cli.Context) error {
			var err error
			if cfg, err = configFromContext(c); err != nil {
				return err
			}
			log.SetDefault(log.NewWriter(stderr, log.VerbosityToLevel(cfg.Verbosity), cfg.LogFormat))
			scheme, err = NewScheme(cfg, metrics.NewBLS(registry))
			if err != nil {
				return err
			}
			log.Debug("Configured scheme", "scheme", scheme.Name(), "context", cfg.Context, "workers", cfg.Workers)
			return nil
		},
		After: func(c *cli.Context) error {
			if c.Bool(metricsFlag.Name) {
				return metrics.WriteText(stderr, registry)
			}
			return nil
		},
		// Errors are mapped to exit codes by run, not by cli.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:  "keygen",
				Usage: "generate a keypair (and proof of possession with --pop)",
				Action: func(c *cli.Context) error {
					key, err := scheme.GenerateKey(rng)
					if err != nil {
						return err
					}
					out, err := yaml.Marshal(key)
					if err != nil {
						return err
					}
					_, err = stdout.Write(out)
					return err
				},
			},
			{
				Name:      "sign",
				Usage:     "sign a message",
				ArgsUsage: "<message>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Usage: "secret key (hex)", Required: true},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.Wrap(errUsage, "sign takes exactly one message")
					}
					sk, err := hex.DecodeString(c.String("key"))
					if err != nil {
						return errors.Wrap(err, "secret key hex")
					}
					sig, err := scheme.Sign(sk, c.Args().First())
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(stdout, hex.EncodeToString(sig))
					return err
				},
			},
			{
				Name:      "aggregate",
				Usage:     "add signatures together",
				ArgsUsage: "<signature hex>...",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.Wrap(errUsage, "aggregate needs at least one signature")
					}
					sigs := make([][]byte, 0, c.NArg())
					for _, a := range c.Args().Slice() {
						b, err := hex.DecodeString(a)
						if err != nil {
							return errors.Wrap(err, "signature hex")
						}
						sigs = append(sigs, b)
					}
					agg, err := scheme.Aggregate(sigs)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(stdout, hex.EncodeToString(agg))
					return err
				},
			},
			{
				Name:      "verify",
				Usage:     "verify aggregate signature bundles",
				ArgsUsage: "<bundle.yaml>...",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.Wrap(errUsage, "verify needs at least one bundle")
					}
					return verifyFiles(c, scheme, cfg.Workers, stdout)
				},
			},
		},
	}
	return app
}

// configFromContext loads the config file, if any, and applies flags the
// user set explicitly on top of it.
func configFromContext(c *cli.Context) (Config, error) {
	cfg := DefaultConfig()
	if path := c.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if c.IsSet(curveFlag.Name) {
		cfg.Curve = c.String(curveFlag.Name)
	}
	if c.IsSet(orientationFlag.Name) {
		cfg.Orientation = c.String(orientationFlag.Name)
	}
	if c.IsSet(popFlag.Name) {
		cfg.PoP = c.Bool(popFlag.Name)
	}
	if c.IsSet(contextFlag.Name) {
		cfg.Context = c.String(contextFlag.Name)
	}
	if c.IsSet(verbosityFlag.Name) {
		cfg.Verbosity = c.Int(verbosityFlag.Name)
	}
	if c.IsSet(logFormatFlag.Name) {
		cfg.LogFormat = c.String(logFormatFlag.Name)
	}
	if c.IsSet(workersFlag.Name) {
		cfg.Workers = c.Int(workersFlag.Name)
	}
	return cfg, cfg.Validate()
}

func verifyFiles(c *cli.Context, scheme Scheme, workers int, stdout io.Writer) error {
	paths := c.Args().Slice()
	bundles := make([]Bundle, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return errors.Wrap(err, "reading bundle")
		}
		if err := yaml.Unmarshal(data, &bundles[i]); err != nil {
			return errors.Wrapf(err, "parsing bundle %s", p)
		}
	}

	results, err := scheme.VerifyBundles(c.Context, bundles, workers)
	if err != nil {
		return err
	}
	invalid := 0
	for i, ok := range results {
		status := "valid"
		if !ok {
			status = "invalid"
			invalid++
		}
		fmt.Fprintf(stdout, "%s: %s\n", paths[i], status)
	}
	log.Info("Verified bundles", "scheme", scheme.Name(), "bundles", len(results), "invalid", invalid)
	if invalid > 0 {
		return errors.Wrapf(errInvalidSignature, "%d of %d bundles", invalid, len(results))
	}
	return nil
}
