package email

// Template names an HTML file under the template directory.
type Template string

// TemplateWelcome is sent once after signup. It expects "UserName".
const TemplateWelcome Template = "welcome"

type templateInfo struct {
	subject string
	sample  map[string]string
}

var templates = map[Template]templateInfo{
	TemplateWelcome: {
		subject: "Welcome to Places!",
		sample:  map[string]string{"UserName": "Max"},
	},
}

// Subject returns the subject line sent with t, or "" for an unknown template.
func (t Template) Subject() string {
	return templates[t].subject
}

// Known reports whether t is a template this package can send.
func (t Template) Known() bool {
	_, ok := templates[t]
	return ok
}
