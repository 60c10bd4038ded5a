package email

// invitation_approved is the only fully developed template; the
// reminder, expiring and rejected templates are deliberate one-line
// stand-ins until their copy is written.

const approvedTemplateHTML = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<style>
		body {
			font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
			line-height: 1.6;
			color: #333;
			margin: 0;
			padding: 0;
		}
		.container {
			max-width: 600px;
			margin: 0 auto;
			padding: 20px;
		}
		.header {
			background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
			color: white;
			padding: 30px 20px;
			text-align: center;
			border-radius: 8px 8px 0 0;
		}
		.content {
			background: white;
			padding: 30px;
			border: 1px solid #e1e1e1;
			border-top: none;
			border-radius: 0 0 8px 8px;
		}
		.button {
			display: inline-block;
			background: #667eea;
			color: white;
			padding: 14px 28px;
			text-decoration: none;
			border-radius: 6px;
			font-weight: 600;
			margin: 20px 0;
		}
		.details {
			background: #f7fafc;
			padding: 20px;
			margin: 20px 0;
			border-radius: 6px;
			border-left: 4px solid #667eea;
		}
		.footer {
			text-align: center;
			padding: 20px;
			color: #718096;
			font-size: 14px;
		}
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Welcome to Thepia Flows!</h1>
			<p style="margin: 10px 0 0 0; opacity: 0.9;">Your demo access has been approved</p>
		</div>

		<div class="content">
			<p>Hi {{.Name}},</p>

			<p>Great news! Your demo request has been approved and your personalized demo environment is ready.</p>

			<div class="details">
				<h3>Demo Details</h3>
				<ul style="list-style: none; padding: 0;">
					<li><strong>Name:</strong> {{.Name}}</li>
					<li><strong>Company:</strong> {{if .Company}}{{.Company}}{{else}}Not specified{{end}}</li>
					<li><strong>Duration:</strong> {{.DemoDuration}}</li>
					<li><strong>Expires:</strong> {{.ExpiresAtFormatted}}</li>
					{{if .WorkflowType}}<li><strong>Workflow Type:</strong> {{.WorkflowType}}</li>{{end}}
					{{if .TeamSize}}<li><strong>Team Size:</strong> {{.TeamSize}}</li>{{end}}
				</ul>
			</div>

			<div style="text-align: center; margin: 30px 0;">
				<a href="{{.AccessURL}}" class="button">Access Your Demo</a>
			</div>

			<h3>Getting Started</h3>
			<ol>
				<li><strong>Click the button above</strong> to access your demo environment</li>
				<li><strong>Sign in with your email</strong> using a secure passkey (no password needed!)</li>
				<li><strong>Explore the features</strong> we've prepared based on your requirements</li>
				<li><strong>Contact us anytime</strong> if you have questions or need assistance</li>
			</ol>

			{{if .AdminNotes}}
			<div class="details" style="border-left-color: #48bb78;">
				<h3>Note from our team</h3>
				<p style="margin: 0;">{{.AdminNotes}}</p>
			</div>
			{{end}}

			<p>We're excited to show you how Thepia Flows can transform your workflow automation. If you have any questions or need assistance, simply reply to this email.</p>

			<p>Best regards,<br>
			<strong>The Thepia Team</strong></p>
		</div>

		<div class="footer">
			<p>&copy; 2024 Thepia. All rights reserved.<br>
			<a href="https://thepia.com" style="color: #667eea;">thepia.com</a></p>
		</div>
	</div>
</body>
</html>`

const approvedTemplateText = `
Hi {{.Name}},

Great news! Your demo request has been approved and your personalized demo environment is ready.

Demo Details:
- Name: {{.Name}}
- Company: {{if .Company}}{{.Company}}{{else}}Not specified{{end}}
- Duration: {{.DemoDuration}}
- Expires: {{.ExpiresAtFormatted}}
{{if .WorkflowType}}- Workflow Type: {{.WorkflowType}}
{{end}}{{if .TeamSize}}- Team Size: {{.TeamSize}}
{{end}}
Access your demo: {{.AccessURL}}

Getting Started:
1. Click the link above to access your demo environment
2. Sign in with your email using a secure passkey (no password needed!)
3. Explore the features we've prepared based on your requirements
4. Contact us anytime if you have questions or need assistance

{{if .AdminNotes}}Note from our team: {{.AdminNotes}}

{{end}}We're excited to show you how Thepia Flows can transform your workflow automation. If you have any questions or need assistance, simply reply to this email.

Best regards,
The Thepia Team

(c) 2024 Thepia. All rights reserved.
https://thepia.com`

const (
	reminderTemplateHTML = `<p>Reminder email for {{.Name}}</p>`
	reminderTemplateText = `Reminder email for {{.Name}}`

	expiringTemplateHTML = `<p>Expiring notice for {{.Name}}</p>`
	expiringTemplateText = `Expiring notice for {{.Name}}`

	rejectedTemplateHTML = `<p>Request update for {{.Name}}</p>`
	rejectedTemplateText = `Request update for {{.Name}}`

	defaultTemplateHTML = `<p>Notification for {{.Name}}</p>`
	defaultTemplateText = `Notification for {{.Name}}`
)
