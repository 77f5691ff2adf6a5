// Package all pulls in every storage backend so a single blank import
// registers them all.
package all

import (
	_ "github.com/ejo6/DataWarehouse/internal/storage/mssql"
	_ "github.com/ejo6/DataWarehouse/internal/storage/mysql"
	_ "github.com/ejo6/DataWarehouse/internal/storage/postgres"
	_ "github.com/ejo6/DataWarehouse/internal/storage/sqlite"
)
