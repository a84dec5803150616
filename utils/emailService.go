package utils

import (
	"esd/config"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail delivers an HTML mail through the configured SMTP relay. When no
// sender is configured the mail is logged to the console instead so local
// development keeps working.
func SendEmail(to []string, subject string, htmlBody string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		log.Printf("--- Email (console fallback) ---\nTo: %v\nSubject: %s\n%s\n", to, subject, htmlBody)
		return nil
	}

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Campus Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the shared portal layout.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3949AB; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CAMPUS PORTAL</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Campus Portal. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a freshly registered user.
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Campus Portal"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Campus Portal</strong>! Your account has been created and is awaiting approval.</p>
		<p>You will receive another email once an administrator approves your account.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendOTPEmail delivers a one-time password.
func SendOTPEmail(email, otp string, validMinutes int) {
	subject := "Your Campus Portal Verification Code"
	body := fmt.Sprintf(`
		<p>Your One Time Password (OTP) is:</p>
		<h1 style="text-align: center; color: #3949AB; font-size: 40px; margin: 20px 0;">%s</h1>
		<p>The code expires in %d minutes. Do not share it with anyone.</p>
	`, otp, validMinutes)

	go SendEmail([]string{email}, subject, getEmailTemplate("OTP Verification", body))
}

// SendApprovalEmail notifies a user of their approval decision.
func SendApprovalEmail(email, name string, approved bool) {
	subject := "Account Approval Update"
	verdict := "approved"
	extra := "<p>You can now log in and access all platform features.</p>"
	if !approved {
		verdict = "rejected"
		extra = "<p>Please contact your department administrator for details.</p>"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your Campus Portal account has been <strong>%s</strong>.</p>
		%s
	`, name, verdict, extra)

	go SendEmail([]string{email}, subject, getEmailTemplate("Account Approval", body))
}

// SendChainPublishedEmail tells a student a milestone chain went live.
func SendChainPublishedEmail(email, name, chainName string) {
	subject := "New Milestones Published: " + chainName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The milestone chain <strong>%s</strong> has been published.</p>
		<div class="info-box">Log in to view your upcoming milestones and deadlines.</div>
	`, name, chainName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Milestones Published", body))
}

// SendGradedEmail tells a student a submission was graded.
func SendGradedEmail(email, name, milestoneName, grade string) {
	subject := "Submission Graded: " + milestoneName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your submission for <strong>%s</strong> has been graded.</p>
		<div class="info-box">Grade: <strong>%s</strong></div>
		<p>Log in to view detailed feedback.</p>
	`, name, milestoneName, grade)

	go SendEmail([]string{email}, subject, getEmailTemplate("Submission Graded", body))
}

// SendSlotAssignedEmail tells a team leader about a new exam slot.
func SendSlotAssignedEmail(email, name, scheduleTitle, when string) {
	subject := "Exam Slot Assigned: " + scheduleTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your team has been assigned an exam slot for <strong>%s</strong>.</p>
		<div class="info-box">Scheduled at: <strong>%s</strong></div>
	`, name, scheduleTitle, when)

	go SendEmail([]string{email}, subject, getEmailTemplate("Exam Slot Assigned", body))
}
