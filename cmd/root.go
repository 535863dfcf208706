package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/databacker/devdb/pkg/core"
	"github.com/databacker/devdb/pkg/docker"
	"github.com/databacker/devdb/pkg/run"
	"github.com/databacker/devdb/pkg/storage/credentials"
)

type subCommand func() (*cobra.Command, error)

var subCommands = []subCommand{rmCmd}

var creds credentials.Creds

func rootCmd() (*cobra.Command, error) {
	var (
		v   *viper.Viper
		cmd *cobra.Command
	)
	cmd = &cobra.Command{
		Use:   "devdb [flags] dump-file",
		Short: "spin up a disposable database container seeded from a SQL dump",
		Long: `Spin up a disposable MySQL, MariaDB or PostgreSQL container seeded from
a SQL dump file, for local development and testing. The engine is detected
from the first lines of the dump unless --base is given. The dump-file
argument may be a local path or a file://, s3:// or smb:// URL.

With --to-docker or --to-compose, no container is started; instead the
rendered build files are written to the given archive.

When using s3:// targets, supports the standard AWS options:

  AWS_ACCESS_KEY_ID: AWS Key ID
  AWS_SECRET_ACCESS_KEY: AWS Secret Access Key
  AWS_DEFAULT_REGION: Region in which the bucket resides
`,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			bindFlags(cmd, v)

			if v.GetBool("debug") {
				log.SetLevel(log.DebugLevel)
			}

			creds = credentials.Creds{
				AWSEndpoint: v.GetString("aws-endpoint-url"),
				SMBUser:     v.GetString("smb-user"),
				SMBPass:     v.GetString("smb-pass"),
			}
		},
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = c.Help()
				os.Exit(1)
			}
			opts := core.Options{
				DumpTarget: args[0],
				BaseEngine: v.GetString("base"),
				Port:       v.GetInt("port"),
				User:       v.GetString("user"),
				Password:   v.GetString("password"),
				Force:      v.GetBool("force"),
				Detached:   v.GetBool("detached"),
				ToDocker:   v.GetString("to-docker"),
				ToCompose:  v.GetString("to-compose"),
				Creds:      creds,
			}
			cfg, cleanup, err := core.Resolve(opts)
			defer cleanup()
			if err != nil {
				return err
			}
			if cfg.ExportRequested() {
				return core.Export(c.Context(), cfg)
			}
			lifecycle := core.NewLifecycle(docker.New(run.New()))
			return lifecycle.Up(c.Context(), cfg)
		},
	}

	v = viper.New()
	v.SetEnvPrefix("devdb")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	pflags := cmd.PersistentFlags()

	// debug via CLI or env var or default
	pflags.Bool("debug", false, "enable debug logging")

	// storage credential options
	pflags.String("aws-endpoint-url", "", "Specify an alternative endpoint for s3 interoperable systems e.g. Digitalocean; ignored if not using s3.")
	pflags.String("smb-user", "", "SMB username. May also be specified in an smb:// url. If both specified, this variable overrides the value in the URL.")
	pflags.String("smb-pass", "", "SMB password. May also be specified in an smb:// url. If both specified, this variable overrides the value in the URL.")

	flags := cmd.Flags()

	// external port; the engine's own port is the default
	flags.IntP("port", "p", 0, "external port to publish; defaults to the engine's internal port")

	// explicit engine instead of dump detection
	flags.StringP("base", "b", "", "database engine to use instead of detecting one from the dump (mariadb, mysql, postgres)")

	// leave the container running instead of streaming logs
	flags.BoolP("detached", "d", false, "leave the container running in the background instead of attaching to its logs")

	// replace a pre-existing container of the same name
	flags.BoolP("force", "f", false, "replace an existing devdb container of the same name")

	// credentials baked into the image
	flags.StringP("user", "u", "", fmt.Sprintf("database user to create, defaults to %q", core.DefaultUser))
	flags.StringP("password", "P", "", fmt.Sprintf("password for the database user, defaults to %q", core.DefaultPass))

	// export targets
	flags.String("to-docker", "", "write the rendered build files to the given archive instead of running anything")
	flags.String("to-compose", "", "like --to-docker, but additionally include a docker-compose.yaml")

	for _, subCmd := range subCommands {
		if sc, err := subCmd(); err != nil {
			return nil, err
		} else {
			cmd.AddCommand(sc)
		}
	}

	return cmd, nil
}

// Bind each cobra flag to its associated viper configuration (environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name
		_ = v.BindPFlag(configName, f)
		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			_ = cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
		}
	})
}

// Execute primary function for cobra
func Execute() {
	rootCmd, err := rootCmd()
	if err != nil {
		log.Fatal(err)
	}
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
