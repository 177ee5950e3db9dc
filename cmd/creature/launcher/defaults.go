package launcher

// Defaults bundles the baseline configuration values the launcher uses before config files and
// flags override them.

type Defaults struct {
	Logging LoggingDefaults
	Storage StorageDefaults
	Convert ConvertDefaults
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs (helpful on terminals, best disabled when piping to files).
	SentryDSN string //	Sentry project DSN. Empty keeps error reporting local.
}

// StorageDefaults configures the asset catalog.
type StorageDefaults struct {
	Dir         string //	Catalog directory. A leading ~ expands to the home directory, relative paths resolve against the working directory.
	CacheSizeMB int    //	Block cache handed to Pebble. Catalog reads are whole buffers, so a small cache is enough.
	Handles     int    //	Upper bound on files Pebble keeps open.
}

// ConvertDefaults tunes JSON to flat buffer conversion.
type ConvertDefaults struct {
	BufferSize int //	Initial builder capacity in bytes. The builder doubles on demand, this only saves early copies.
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
		Storage: StorageDefaults{
			Dir:         "~/.creature/catalog",
			CacheSizeMB: 16,
			Handles:     256,
		},
		Convert: ConvertDefaults{
			BufferSize: 64 * 1024,
		},
	}
}
