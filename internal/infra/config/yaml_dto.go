package config

// YAMLFile is the on-disk layout of brix.yaml.
type YAMLFile struct {
	Brix YAMLConfig `yaml:"brix"`
}

type YAMLConfig struct {
	Inputs YAMLInputs `yaml:"inputs"`
	Output YAMLOutput `yaml:"output"`
	Server YAMLServer `yaml:"server"`
	Log    YAMLLog    `yaml:"log"`
}

type YAMLInputs struct {
	InitialMass    *YAMLField `yaml:"initial_mass,omitempty"`
	InitialPercent *YAMLField `yaml:"initial_percent,omitempty"`
	TargetPercent  *YAMLField `yaml:"target_percent,omitempty"`
}

// YAMLField uses pointers so an absent key keeps the default.
type YAMLField struct {
	Min     *float64 `yaml:"min,omitempty"`
	Max     *float64 `yaml:"max,omitempty"`
	Default *float64 `yaml:"default,omitempty"`
	Step    *float64 `yaml:"step,omitempty"`
}

type YAMLOutput struct {
	Precision *int `yaml:"precision,omitempty"`
}

type YAMLServer struct {
	Addr string `yaml:"addr,omitempty"`
}

type YAMLLog struct {
	Level string `yaml:"level,omitempty"`
	Dir   string `yaml:"dir,omitempty"`
}
