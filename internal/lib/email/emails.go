package email

// SendWelcomeEmail greets a newly registered user by name.
func (c *Client) SendWelcomeEmail(to, name string) error {
	return c.SendEmail(to, TemplateWelcome.Subject(), TemplateWelcome, map[string]string{
		"UserName": name,
	})
}
