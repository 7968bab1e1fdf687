/*
Copyright © 2024 Clevesson Mendonça
*/
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"

	"github.com/clevesson-mendonca-sea/migrador/liferay"
	"github.com/clevesson-mendonca-sea/migrador/migration"
	"github.com/clevesson-mendonca-sea/migrador/wordpress"
)

var migrateUsage = strings.TrimSpace(`
Run the full migration: categories first, then images, then the articles themselves.  A stage
failure stops the run; the finished stages' mapping files survive, so a re-run picks up from them.
`)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all migration stages in order",
	Long:  migrateUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugLog("  WithVCR: %v\n", WithVCR)

		env, err := newMigrationEnv()
		if err != nil {
			return err
		}
		defer env.close()

		if _, err := env.categoryMapper().Run(cmd.Context()); err != nil {
			return fmt.Errorf("cmd: category stage failed: %w", err)
		}
		if _, err := env.imageMigrator().Run(cmd.Context()); err != nil {
			return fmt.Errorf("cmd: image stage failed: %w", err)
		}
		if _, err := env.contentMigrator().Run(cmd.Context()); err != nil {
			return fmt.Errorf("cmd: content stage failed: %w", err)
		}
		return nil
	},
}

var (
	WithVCR  bool
	Progress bool
)

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.PersistentFlags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
	migrateCmd.PersistentFlags().BoolVar(&Progress, "progress", true, "show progress bars")
}

// migrationEnv bundles the collaborators the migrate subcommands share.
type migrationEnv struct {
	wordpress *wordpress.API
	liferay   *liferay.API
	store     *migration.MappingStore
	logger    *log.Logger
	recorder  *recorder.Recorder
}

func newMigrationEnv() (*migrationEnv, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	if Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if WordPressAPIURL == "" {
		return nil, fmt.Errorf("cmd: no WordPress API URL set.  Use --wordpress-api-url or set it in your config file")
	}
	wpAPI, err := wordpress.NewAPI(WordPressAPIURL)
	if err != nil {
		return nil, fmt.Errorf("cmd: WordPress API creation failed: %w", err)
	}

	if LiferayAPIBase == "" || LiferaySiteID == "" || LiferayUsername == "" {
		return nil, fmt.Errorf("cmd: Liferay connection needs --liferay-api-base, --liferay-site-id and --liferay-username")
	}
	password, err := liferayPassword()
	if err != nil {
		return nil, err
	}
	lrAPI, err := liferay.NewAPI(LiferayAPIBase, LiferaySiteID, LiferayUsername, password)
	if err != nil {
		return nil, fmt.Errorf("cmd: Liferay API creation failed: %w", err)
	}

	store, err := migration.OpenMappingStore(URLMappingFile)
	if err != nil {
		return nil, err
	}

	env := &migrationEnv{
		wordpress: wpAPI,
		liferay:   lrAPI,
		store:     store,
		logger:    logger,
	}

	if WithVCR {
		// set up VCR recordings.
		opts := &recorder.Options{
			CassetteName:       "fixtures/migration-stuff",
			Mode:               recorder.ModeReplayWithNewEpisodes,
			SkipRequestLatency: true,
			RealTransport:      http.DefaultTransport,
		}
		r, err := recorder.NewWithOptions(opts)
		if err != nil {
			return nil, fmt.Errorf("cmd: Couldn't set up go-vcr recording: %w", err)
		}

		// Add a hook which removes Authorization headers from all requests
		hook := func(i *cassette.Interaction) error {
			delete(i.Request.Headers, "Authorization")
			return nil
		}
		r.AddHook(hook, recorder.AfterCaptureHook)
		r.SetReplayableInteractions(true)

		vcrClient := r.GetDefaultClient()
		env.wordpress.Client = vcrClient
		env.liferay.Client = vcrClient
		env.recorder = r
	}

	return env, nil
}

// close stops the VCR recorder, if one is running, so the cassette is flushed.
func (env *migrationEnv) close() {
	if env.recorder != nil {
		env.recorder.Stop()
	}
}

func (env *migrationEnv) categoryMapper() *migration.CategoryMapper {
	return &migration.CategoryMapper{
		WordPress:      env.wordpress,
		Liferay:        env.liferay,
		VocabularyName: migration.VocabularyName,
		MappingFile:    CategoryMappingFile,
		Logger:         env.logger,
	}
}

func (env *migrationEnv) imageMigrator() *migration.ImageMigrator {
	return &migration.ImageMigrator{
		WordPress:           env.wordpress,
		Liferay:             env.liferay,
		Store:               env.store,
		CategoryMappingFile: CategoryMappingFile,
		TempDir:             TempFolder,
		SourceHost:          SourceHost,
		UploadPrefixes:      UploadPrefixes,
		Client:              env.wordpress.Client,
		Logger:              env.logger,
		Progress:            Progress,
	}
}

func (env *migrationEnv) contentMigrator() *migration.ContentMigrator {
	if ContentStructureID == 0 {
		env.logger.Warn("no content structure ID set, creation will likely fail", "flag", "--content-structure-id")
	}
	return &migration.ContentMigrator{
		WordPress:           env.wordpress,
		Liferay:             env.liferay,
		Store:               env.store,
		CategoryMappingFile: CategoryMappingFile,
		ContentStructureID:  ContentStructureID,
		Logger:              env.logger,
		Progress:            Progress,
	}
}

// liferayPassword resolves the portal password, preferring a password command
// over a literal value so the secret can stay out of config files.
func liferayPassword() (string, error) {
	if len(LiferayPasswordCmd) > 0 {
		output, err := exec.Command(LiferayPasswordCmd[0], LiferayPasswordCmd[1:]...).Output()
		if err != nil {
			return "", fmt.Errorf("cmd: couldn't execute liferay-password-cmd '%v': %w", LiferayPasswordCmd, err)
		}
		return strings.Split(string(output), "\n")[0], nil
	}
	if LiferayPassword != "" {
		return LiferayPassword, nil
	}
	return "", fmt.Errorf("cmd: no Liferay password.  Use --liferay-password-cmd, or LIFERAY_PASSWORD in the environment")
}
