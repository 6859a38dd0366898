package descriptor

// Recognized descriptor keys.
const (
	KeyName        = "name"
	KeyLongName    = "longname"
	KeyVersion     = "version"
	KeyDescription = "description"
	KeyPath        = "path"
	KeyParams      = "params"
	KeyEnv         = "env"
)

// Keys lists the recognized keys in their canonical order.
var Keys = []string{KeyName, KeyLongName, KeyVersion, KeyDescription, KeyPath, KeyParams, KeyEnv}

// Descriptor is one game's metadata. A nil field is unset, which is distinct
// from a field explicitly set to a value.
type Descriptor struct {
	Name        *string
	LongName    *string
	Version     *string
	Description *string
	Path        *string
	Params      *string
	Env         *string

	// Source is the file the descriptor was read from, if any.
	Source string
}

// setters maps every recognized key to the field it assigns. Keys are matched
// exactly, so "name" can never be confused with "longname".
var setters = map[string]func(d *Descriptor, v string){
	KeyName:        func(d *Descriptor, v string) { d.Name = &v },
	KeyLongName:    func(d *Descriptor, v string) { d.LongName = &v },
	KeyVersion:     func(d *Descriptor, v string) { d.Version = &v },
	KeyDescription: func(d *Descriptor, v string) { d.Description = &v },
	KeyPath:        func(d *Descriptor, v string) { d.Path = &v },
	KeyParams:      func(d *Descriptor, v string) { d.Params = &v },
	KeyEnv:         func(d *Descriptor, v string) { d.Env = &v },
}

// Set assigns value to the field named by key. It reports whether key is part
// of the schema; unknown keys leave the descriptor untouched.
func (d *Descriptor) Set(key, value string) bool {
	set, ok := setters[key]
	if !ok {
		return false
	}
	set(d, value)
	return true
}

// Get returns the value of the field named by key and whether it is set.
func (d *Descriptor) Get(key string) (string, bool) {
	var p *string
	switch key {
	case KeyName:
		p = d.Name
	case KeyLongName:
		p = d.LongName
	case KeyVersion:
		p = d.Version
	case KeyDescription:
		p = d.Description
	case KeyPath:
		p = d.Path
	case KeyParams:
		p = d.Params
	case KeyEnv:
		p = d.Env
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Fields returns every set field keyed by its descriptor key.
func (d *Descriptor) Fields() map[string]string {
	out := make(map[string]string)
	for _, k := range Keys {
		if v, ok := d.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

// Title is the name shown in menus: the long name when present, otherwise
// the short name.
func (d *Descriptor) Title() string {
	if v, ok := d.Get(KeyLongName); ok && v != "" {
		return v
	}
	v, _ := d.Get(KeyName)
	return v
}
