// Package money formate les montants en Dinar Algérien pour l'affichage
// (messages d'alerte, notifications). Les calculs restent en decimal.Decimal;
// ici on ne fait que la mise en forme.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Groupement de milliers à l'anglaise ("25,000"), comme l'affichage
// historique de l'application (toLocaleString en-US côté client).
var printer = message.NewPrinter(language.English)

// Format renvoie le montant avec séparateurs de milliers: "25,000" ou "25,000.50".
// Les centimes n'apparaissent que si le montant n'est pas entier.
func Format(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}

// FormatDA ajoute le suffixe monétaire: "25,000 DA".
func FormatDA(d decimal.Decimal) string {
	return Format(d) + " DA"
}
