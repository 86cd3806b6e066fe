package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// SendVerificationMail delivers a one-time code to a freshly
// registered account. No workflow invariant depends on delivery, the
// caller may treat failures as soft
func SendVerificationMail(code, sendTo string) error {
	from := viper.GetString("mail.sender_address")
	if from == "" {
		// Mail is optional in dev setups
		return nil
	}

	if sendTo == from {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/html", fmt.Sprintf(
		"Your verification code is <b>%v</b>.<br><br>It expires in %v minutes.",
		code, viper.GetInt("mail.otp_ttl_minutes")))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
