// Package config handles compiler and scene tool configuration.
package config

// Config holds all settings.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// AssetsConfig locates textures and item models.
type AssetsConfig struct {
	ResourcePack string  `yaml:"resource_pack"` // Directory or .zip resource pack
	Namespace    string  `yaml:"namespace"`     // Texture namespace under assets/
	UVScale      float64 `yaml:"uv_scale"`      // Texture-space unit of block models
	ItemModels   string  `yaml:"item_models"`   // Directory of item model documents
}

// RenderConfig holds primitive generation settings.
type RenderConfig struct {
	Workers int        `yaml:"workers"` // Entities processed in parallel
	Offset  [3]float64 `yaml:"offset"`  // World offset added to every entity
}

// SceneConfig holds scene persistence settings.
type SceneConfig struct {
	StorePath string `yaml:"store_path"` // SQLite snapshot store
	Compress  bool   `yaml:"compress"`   // Write scene files as zstd
	Validate  bool   `yaml:"validate"`   // Schema-check scene documents on load
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			ResourcePack: "resourcepack",
			Namespace:    "minecraft",
			UVScale:      16,
		},
		Render: RenderConfig{
			Workers: 4,
		},
		Scene: SceneConfig{
			StorePath: "scenes.db",
			Compress:  false,
			Validate:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
