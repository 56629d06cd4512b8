package notification

import "fmt"

// Message templates for the lifecycle emails. Composition is shared by the
// inline mailer and the queue dispatcher so both paths send identical text.

func composeProposalSubmitted(jobTitle, providerName string, price float64) (subject, body string) {
	subject = fmt.Sprintf("İlanınıza yeni teklif geldi: %s", jobTitle)
	body = fmt.Sprintf(
		"Merhaba,\n\n%q ilanınıza %s tarafından %.2f TL tutarında yeni bir teklif verildi.\n\nTeklifi incelemek için hesabınıza giriş yapabilirsiniz.\n\neŞantiyem",
		jobTitle, providerName, price,
	)
	return subject, body
}

func composeProposalAccepted(jobTitle, customerName string, price float64) (subject, body string) {
	subject = fmt.Sprintf("Teklifiniz kabul edildi: %s", jobTitle)
	body = fmt.Sprintf(
		"Tebrikler!\n\n%q ilanı için verdiğiniz %.2f TL tutarındaki teklif %s tarafından kabul edildi.\n\nİş detayları için hesabınıza giriş yapabilirsiniz.\n\neŞantiyem",
		jobTitle, price, customerName,
	)
	return subject, body
}

func composeJobApproved(jobTitle string) (subject, body string) {
	subject = fmt.Sprintf("İlanınız yayında: %s", jobTitle)
	body = fmt.Sprintf(
		"Merhaba,\n\n%q ilanınız onaylandı ve yayına alındı. Artık ustalardan teklif alabilirsiniz.\n\neŞantiyem",
		jobTitle,
	)
	return subject, body
}

func composePasswordResetOTP(otp string) (subject, body string) {
	subject = "Şifre sıfırlama kodunuz"
	body = fmt.Sprintf(
		"Merhaba,\n\nŞifre sıfırlama kodunuz: %s\n\nKod 5 dakika boyunca geçerlidir. Bu isteği siz yapmadıysanız bu e-postayı yok sayabilirsiniz.\n\neŞantiyem",
		otp,
	)
	return subject, body
}
