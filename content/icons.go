package content

// IconKind tags a category with the icon the front end draws for it.
type IconKind string

const (
	IconGraduation IconKind = "graduation"
	IconShield     IconKind = "shield"
	IconClipboard  IconKind = "clipboard"
	IconBook       IconKind = "book"
	IconZap        IconKind = "zap"
	IconFlask      IconKind = "flask"
)

var iconNames = map[IconKind]string{
	IconGraduation: "GraduationCap",
	IconShield:     "ShieldCheck",
	IconClipboard:  "ClipboardList",
	IconBook:       "BookOpen",
	IconZap:        "Zap",
	IconFlask:      "FlaskConical",
}

// IconName returns the icon component name for k, falling back to BookOpen.
func (k IconKind) IconName() string {
	if name, ok := iconNames[k]; ok {
		return name
	}
	return iconNames[IconBook]
}
