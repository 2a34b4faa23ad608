package config

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	DSN() string
	MigrationDirectory() string
}

type Storage interface {
	Engine() string
	CSVPath() string
	SeedCSVPath() string
}
