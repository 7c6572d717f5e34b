package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendOTPEmail delivers a verification or password-reset code. When the
// email credentials are not configured the send is skipped and the code
// is logged instead, which keeps local development working without an
// SMTP account.
func SendOTPEmail(to, otp, otpType string) error {
	user := os.Getenv("EMAIL_USER")
	pass := os.Getenv("EMAIL_PASS")
	if user == "" || pass == "" {
		log.Printf("email not configured; OTP for %s (%s): %s", to, otpType, otp)
		return nil
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}

	subject := "Reset Your Password - SafeStay"
	heading := "Password Reset"
	message := "We received a request to reset your password. Use the code below to proceed."
	if otpType == OTPTypeVerification {
		subject = "Verify Your Email - SafeStay"
		heading = "Email Verification"
		message = "Thank you for registering on SafeStay. Use the code below to verify your email address."
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1>SafeStay</h1>
			<p>Student Accommodation Safety Platform</p>
			<h2>%s</h2>
			<p>%s</p>
			<p>Your verification code:</p>
			<h1 style="letter-spacing: 8px;">%s</h1>
			<p><strong>This code expires in 10 minutes.</strong></p>
			<p>If you did not request this, please ignore this email.</p>
		</div>`, heading, message, otp)

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("SafeStay <%s>", user))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, user, pass)
	return d.DialAndSend(m)
}
