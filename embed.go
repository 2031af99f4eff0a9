package offsetd

import "embed"

// MigrationsFS holds the SQL migration files applied at startup.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
