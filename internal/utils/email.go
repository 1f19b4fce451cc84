package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/services"
)

// SendOrderConfirmation envoie l'e-mail de confirmation de commande.
// Ne fait rien si SMTP_HOST n'est pas configuré (dev/local).
func SendOrderConfirmation(order models.Order, lines []services.ConfirmationLine) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@lumina.shop"
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(order.DeliveryEmail); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Confirmation de votre commande %s", order.ID))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order, lines))

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", order.DeliveryEmail)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order models.Order, lines []services.ConfirmationLine) string {
	itemsHTML := ""
	for _, line := range lines {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, line.Title, line.Quantity, line.Price, line.Price*float64(line.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande a été enregistrée avec succès.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left;">Produit</th>
					<th style="padding: 10px; text-align: left;">Quantité</th>
					<th style="padding: 10px; text-align: left;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p><strong>Total : %.2f€</strong></p>
		<p>Livraison : %s</p>
		<p>Paiement : %s</p>
	</div>
</body>
</html>`, itemsHTML, order.TotalAmount, order.DeliveryAddress, order.PaymentMethod)
}
