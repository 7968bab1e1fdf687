/*
Copyright © 2024 Clevesson Mendonça
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/structs"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	// Store the result of binding cobra flags
	Config       string
	ConfigActual string
	Debug        bool

	WordPressAPIURL string

	LiferayAPIBase  string
	LiferaySiteID   string
	LiferayUsername string
	LiferayPassword string
	// Command to run to retrieve the Liferay password, preferred over the bare password
	LiferayPasswordCmd []string

	ContentStructureID  int64
	SourceHost          string
	UploadPrefixes      []string
	TempFolder          string
	CategoryMappingFile string
	URLMappingFile      string

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "migrador",
	Short: "Migrate WordPress content into a Liferay portal",
	Long: `
Moves a WordPress site into Liferay in three passes: mirror the category tree into a taxonomy
vocabulary, re-home every embedded image into Documents and Media, then recreate the posts as
structured web content with their links rewritten to the new locations.
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("migrador: failed to initialise config: %w", err)
		}
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: ~/.config/migrador.yaml, respects MIGRADOR_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringVar(&WordPressAPIURL, "wordpress-api-url", "", "WordPress REST API base, e.g. https://example.org/wp-json/wp/v2")
	rootCmd.PersistentFlags().StringVar(&LiferayAPIBase, "liferay-api-base", "", "Liferay portal base URL")
	rootCmd.PersistentFlags().StringVar(&LiferaySiteID, "liferay-site-id", "", "Liferay site (group) ID")
	rootCmd.PersistentFlags().StringVar(&LiferayUsername, "liferay-username", "", "Liferay account email")
	rootCmd.PersistentFlags().StringVar(&LiferayPassword, "liferay-password", "", "Liferay account password (prefer --liferay-password-cmd)")
	rootCmd.PersistentFlags().StringSliceVar(&LiferayPasswordCmd, "liferay-password-cmd", []string{}, "shell command to retrieve the Liferay password")
	rootCmd.PersistentFlags().Int64Var(&ContentStructureID, "content-structure-id", 0, "Liferay content structure ID for migrated articles")
	rootCmd.PersistentFlags().StringVar(&SourceHost, "source-host", "https://www2.tc.df.gov.br", "origin host for relative image URLs")
	rootCmd.PersistentFlags().StringSliceVar(&UploadPrefixes, "upload-prefixes", []string{"/wp-content", "/wp-conteudo"}, "URL path prefixes that identify migratable uploads")
	rootCmd.PersistentFlags().StringVar(&TempFolder, "temp-folder", "images_temp", "scratch directory for image downloads")
	rootCmd.PersistentFlags().StringVar(&CategoryMappingFile, "category-mapping-file", "category_mapping.json", "where the category ID mapping is kept")
	rootCmd.PersistentFlags().StringVar(&URLMappingFile, "url-mapping-file", "url_mapping.json", "where the URL rewrite mapping is kept")
}

func initializeConfig(cmd *cobra.Command) error {
	// A .env alongside the binary is honoured first, like the portal scripts expect.
	_ = godotenv.Load()

	explicit := Config != ""
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("MIGRADOR_CONFIG")
		if envConfig != "" {
			Config = envConfig
			explicit = true
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = "~/.config/migrador.yaml"
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("migrador: unable to expand homedir: %w", err)
	}
	ConfigActual = config

	if _, err := os.Stat(ConfigActual); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return fmt.Errorf("migrador: specified config file does not exist: %w", err)
		}
		// No default config file is fine; flags and env have to carry everything.
	} else {
		yamlFile, err := os.ReadFile(ConfigActual)
		if err != nil {
			return fmt.Errorf("migrador: error reading config file: %w", err)
		}

		// I'd like to bark if a user sets a key we don't recognise:
		if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
			return fmt.Errorf("migrador: issue parsing config file: %w", err)
		}

		if err := bindFlags(cmd, ParsedConfig); err != nil {
			return fmt.Errorf("migrador: failed to bind flags: %w", err)
		}
	}

	bindEnvFallbacks(cmd)

	return nil
}

type YamlConfig struct {
	WithVCR *bool `yaml:"with-vcr"`

	WordPressAPIURL string `yaml:"wordpress-api-url"`

	LiferayAPIBase     string   `yaml:"liferay-api-base"`
	LiferaySiteID      string   `yaml:"liferay-site-id"`
	LiferayUsername    string   `yaml:"liferay-username"`
	LiferayPasswordCmd []string `yaml:"liferay-password-cmd"`

	ContentStructureID  int64    `yaml:"content-structure-id"`
	SourceHost          string   `yaml:"source-host"`
	UploadPrefixes      []string `yaml:"upload-prefixes"`
	TempFolder          string   `yaml:"temp-folder"`
	CategoryMappingFile string   `yaml:"category-mapping-file"`
	URLMappingFile      string   `yaml:"url-mapping-file"`
}

// Bind each cobra flag to its associated config file key.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("migrador: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// the flag is unknown.  but that can legitimately happen if a subcommand doesn't
			// define a flag your YAML file does...
			continue
		}
		if !cmd.Flags().Changed(key) {
			switch field.Kind() {
			case reflect.Ptr:
				// YamlConfig only uses pointers for bools
				b, ok := field.Value().(*bool)
				if !ok {
					return fmt.Errorf("migrador: found unrecognised field: %+v", field)
				}
				if b != nil {
					cmd.Flags().Set(key, fmt.Sprintf("%v", *b))
				}

			case reflect.String:
				s, ok := field.Value().(string)
				if !ok {
					return fmt.Errorf("migrador: found unrecognised field: %+v", field)
				}
				if s != "" {
					cmd.Flags().Set(key, s)
				}

			case reflect.Int64:
				n, ok := field.Value().(int64)
				if !ok {
					return fmt.Errorf("migrador: found unrecognised field: %+v", field)
				}
				if n != 0 {
					cmd.Flags().Set(key, fmt.Sprintf("%d", n))
				}

			case reflect.Slice:
				ss, ok := field.Value().([]string)
				if !ok {
					return fmt.Errorf("migrador: found unrecognised field: %+v", field)
				}
				for _, s := range ss {
					// yes, repeatedly calling Set() appends to the slice...
					cmd.Flags().Set(key, s)
				}

			default:
				return fmt.Errorf("migrador: found unrecognised field: %+v", field)
			}
		}
	}

	return nil
}

// bindEnvFallbacks fills flags the config file and command line left unset from
// the environment variables the original portal scripts used.
func bindEnvFallbacks(cmd *cobra.Command) {
	envKeys := map[string]string{
		"wordpress-api-url":     "WORDPRESS_API_URL",
		"liferay-api-base":      "LIFERAY_API_BASE",
		"liferay-site-id":       "LIFERAY_SITE_ID",
		"liferay-username":      "LIFERAY_USERNAME",
		"liferay-password":      "LIFERAY_PASSWORD",
		"content-structure-id":  "CONTENT_STRUCTURE_ID",
		"source-host":           "SOURCE_HOST",
		"temp-folder":           "TEMP_FOLDER",
		"category-mapping-file": "CATEGORY_MAPPING_FILE",
		"url-mapping-file":      "URL_MAPPING_FILE",
	}

	for key, envKey := range envKeys {
		flag := cmd.Flag(key)
		if flag == nil || flag.Changed {
			continue
		}
		if value := os.Getenv(envKey); value != "" {
			cmd.Flags().Set(key, value)
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Flags are only available after (or inside, presumably) the .Execute() thing.
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("migrador: execution error: %w", err)
	}

	return nil
}
