package config

// Gorm engines of the directory database.
const (
	GormEngineMySQL    = "mysql"
	GormEnginePostgres = "postgres"
	GormEngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string `validate:"omitempty,oneof=mysql postgres sqlite"`
}
