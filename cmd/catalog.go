package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/buildsearch/buildsearch/search"
	"github.com/buildsearch/buildsearch/search/report"
	"github.com/buildsearch/buildsearch/search/store"
)

// catalogSource holds the flags that select where a catalog comes from.
// Exactly one of YAMLPath, SQLitePath, MySQLDSN or MySQLHost must be set.
type catalogSource struct {
	YAMLPath   string
	SQLitePath string
	MySQLDSN   string
	MySQLHost  string
	MySQL      store.MySQLConfig
}

func (s *catalogSource) register(c *cobra.Command) {
	d := store.DefaultMySQLConfig()
	c.Flags().StringVar(&s.YAMLPath, "catalog", "", "Catalog YAML file")
	c.Flags().StringVar(&s.SQLitePath, "sqlite", "", "SQLite catalog database")
	c.Flags().StringVar(&s.MySQLDSN, "mysql-dsn", "", "MySQL DSN (user:pass@tcp(host:port)/db)")
	c.Flags().StringVar(&s.MySQLHost, "mysql-host", "", "MySQL host; builds the DSN from the --mysql-* flags")
	c.Flags().IntVar(&s.MySQL.Port, "mysql-port", d.Port, "MySQL port")
	c.Flags().StringVar(&s.MySQL.User, "mysql-user", d.User, "MySQL user")
	c.Flags().StringVar(&s.MySQL.Password, "mysql-password", d.Password, "MySQL password")
	c.Flags().StringVar(&s.MySQL.Database, "mysql-db", d.Database, "MySQL database name")
	c.Flags().DurationVar(&s.MySQL.Timeout, "mysql-timeout", d.Timeout, "MySQL dial timeout")
}

// selected names the configured sources.
func (s *catalogSource) selected() []string {
	var names []string
	if s.YAMLPath != "" {
		names = append(names, "--catalog")
	}
	if s.SQLitePath != "" {
		names = append(names, "--sqlite")
	}
	if s.MySQLDSN != "" {
		names = append(names, "--mysql-dsn")
	}
	if s.MySQLHost != "" {
		names = append(names, "--mysql-host")
	}
	return names
}

func (s *catalogSource) validate() error {
	switch names := s.selected(); len(names) {
	case 0:
		return errors.New("no catalog source; use one of --catalog, --sqlite, --mysql-dsn, --mysql-host")
	case 1:
		return nil
	default:
		return fmt.Errorf("exactly one catalog source allowed, got %s", strings.Join(names, ", "))
	}
}

func (s *catalogSource) load(ctx context.Context) (*search.Catalog, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	switch {
	case s.YAMLPath != "":
		logrus.Infof("Loading catalog from %s", s.YAMLPath)
		return store.LoadYAML(s.YAMLPath)
	case s.SQLitePath != "":
		db, err := store.OpenSQLite(ctx, s.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		return store.LoadSQL(ctx, db)
	default:
		dsn := s.MySQLDSN
		if dsn == "" {
			cfg := s.MySQL
			cfg.Host = s.MySQLHost
			dsn = cfg.DSN()
		}
		db, err := store.OpenMySQL(ctx, dsn)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		return store.LoadSQL(ctx, db)
	}
}

var (
	showSources   catalogSource
	exportSources catalogSource
	exportPath    string
	importYAML    string
	importSQLite  string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and convert component catalogs",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List a catalog grouped by category",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		catalog, err := showSources.load(context.Background())
		if err != nil {
			logrus.Fatalf("Failed to load catalog: %v", err)
		}
		report.PrintCatalog(os.Stdout, catalog)
		if empty := catalog.EmptyCategories(); len(empty) > 0 {
			logrus.Warnf("No components for %v; those slots will stay unfilled", empty)
		}
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write any catalog source to a YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		catalog, err := exportSources.load(context.Background())
		if err != nil {
			logrus.Fatalf("Failed to load catalog: %v", err)
		}
		if err := store.WriteYAML(exportPath, catalog); err != nil {
			logrus.Fatalf("Failed to export catalog: %v", err)
		}
		logrus.Infof("Exported %d components to %s", catalog.Len(), exportPath)
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a YAML catalog into a SQLite database, creating the schema",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		n, err := importCatalog(context.Background(), importYAML, importSQLite)
		if err != nil {
			logrus.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported %d components into %s\n", n, importSQLite)
	},
}

func importCatalog(ctx context.Context, yamlPath, sqlitePath string) (int, error) {
	catalog, err := store.LoadYAML(yamlPath)
	if err != nil {
		return 0, err
	}
	db, err := store.OpenSQLite(ctx, sqlitePath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	if err := store.CreateSchema(ctx, db); err != nil {
		return 0, err
	}
	return store.ImportCatalog(ctx, db, catalog)
}

func init() {
	showSources.register(catalogShowCmd)
	exportSources.register(catalogExportCmd)
	catalogExportCmd.Flags().StringVar(&exportPath, "out", "catalog.yaml", "Destination YAML file")

	catalogImportCmd.Flags().StringVar(&importYAML, "catalog", "", "Catalog YAML file to import")
	catalogImportCmd.Flags().StringVar(&importSQLite, "sqlite", "", "SQLite database to create or update")
	_ = catalogImportCmd.MarkFlagRequired("catalog")
	_ = catalogImportCmd.MarkFlagRequired("sqlite")

	catalogCmd.AddCommand(catalogShowCmd, catalogExportCmd, catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}
