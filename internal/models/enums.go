package models

type Framework string

const (
	FrameworkReact   Framework = "react"
	FrameworkDjango  Framework = "django"
	FrameworkAngular Framework = "angular"
	FrameworkExpress Framework = "express"
)

// Frameworks lists the supported tracks in canonical display order.
var Frameworks = []Framework{
	FrameworkReact,
	FrameworkDjango,
	FrameworkAngular,
	FrameworkExpress,
}

type FrameworkConfig struct {
	Name  string
	Color string
}

func (f Framework) Config() FrameworkConfig {
	switch f {
	case FrameworkReact:
		return FrameworkConfig{Name: "React", Color: "#61DAFB"}
	case FrameworkDjango:
		return FrameworkConfig{Name: "Django", Color: "#092E20"}
	case FrameworkAngular:
		return FrameworkConfig{Name: "Angular", Color: "#DD0031"}
	case FrameworkExpress:
		return FrameworkConfig{Name: "Express", Color: "#000000"}
	}
	return FrameworkConfig{Name: string(f), Color: "#6B7280"}
}

// Language returns the editor language for this track's problems.
func (f Framework) Language() string {
	if f == FrameworkDjango {
		return "python"
	}
	return "javascript"
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyPro          Difficulty = "pro"
	DifficultyVeteran      Difficulty = "veteran"
)

// Difficulties lists the levels in ascending order.
var Difficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyPro,
	DifficultyVeteran,
}

type DifficultyConfig struct {
	Label string
	Color string
}

func (d Difficulty) Config() DifficultyConfig {
	switch d {
	case DifficultyBeginner:
		return DifficultyConfig{Label: "Beginner", Color: "success"}
	case DifficultyIntermediate:
		return DifficultyConfig{Label: "Intermediate", Color: "warning"}
	case DifficultyPro:
		return DifficultyConfig{Label: "Pro", Color: "error"}
	case DifficultyVeteran:
		// Veteran shares the pro color family; only the label differs.
		return DifficultyConfig{Label: "Veteran", Color: "error"}
	}
	return DifficultyConfig{Label: string(d), Color: "default"}
}
