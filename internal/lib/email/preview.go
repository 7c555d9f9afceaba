package email

// Preview renders a template with its sample data. ok is false for an
// unknown template.
func (c *Client) Preview(templateName Template) (body string, ok bool, err error) {
	if !templateName.Known() {
		return "", false, nil
	}

	body, err = c.Render(templateName, templates[templateName].sample)
	return body, true, err
}
