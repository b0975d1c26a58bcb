package email

import (
	"fmt"
)

// StaffInvitationData contains the data for the invitation sent when an
// admin creates a back-office account.
type StaffInvitationData struct {
	Name         string
	Email        string
	Role         string
	TempPassword string
	LoginURL     string
	AppName      string
}

// BuildStaffInvitationEmail creates the welcome message for a newly
// created back-office account. The temporary password is only included
// when the admin let the system generate one.
func BuildStaffInvitationEmail(data StaffInvitationData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "KingsCare"
	}

	name := data.Name
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("Your %s back-office account", appName)

	passwordLine := ""
	passwordHTML := ""
	if data.TempPassword != "" {
		passwordLine = fmt.Sprintf("\nYour temporary password: %s\nPlease change it after your first login.\n", data.TempPassword)
		passwordHTML = fmt.Sprintf(`<p>Your temporary password:</p>
    <p style="background-color: #f3f4f6; padding: 10px 15px; border-radius: 4px; font-family: monospace; font-size: 16px;">%s</p>
    <p>Please change it after your first login.</p>`, data.TempPassword)
	}

	textBody := fmt.Sprintf(`Hi %s,

An account has been created for you on the %s back office with the %s role.

Sign in here:
%s
%s
Thanks,
The %s Team`,
		name, appName, data.Role, data.LoginURL, passwordLine, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>An account has been created for you on the %s back office with the <strong>%s</strong> role.</p>
    <p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Sign In</a>
    </p>
    %s
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		name, appName, data.Role, data.LoginURL, passwordHTML, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
