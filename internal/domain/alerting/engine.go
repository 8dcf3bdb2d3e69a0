// Package alerting contient le moteur de génération d'alertes (service de domaine pur).
//
// Le moteur balaye un instantané des produits et des clients et produit le jeu
// d'alertes de remplacement complet: stock faible/rupture, péremption, créance
// élevée. Aucun effet de bord — la purge puis l'insertion en base sont à la
// charge de l'appelant. Deux passages sur le même instantané produisent des
// listes structurellement identiques (seuls IDs et horodatages diffèrent).
package alerting

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/pkg/money"
)

// Seuils du moteur.
var (
	// Créance au-delà de laquelle une alerte credit est émise (strictement supérieur).
	DebtWarningThreshold = decimal.NewFromInt(10000)
	// Créance au-delà de laquelle l'alerte credit devient critique (strictement supérieur).
	DebtCriticalThreshold = decimal.NewFromInt(20000)
)

const (
	// Horizon de surveillance de la péremption, en jours.
	expiryHorizonDays = 7
	// À combien de jours de la péremption l'alerte devient critique.
	expiryCriticalDays = 2
)

// Generate applique les trois règles sur l'instantané et renvoie les alertes.
// Un produit peut émettre à la fois une alerte stock et une alerte expiry: les
// deux contrôles sont indépendants. Un client émet au plus une alerte credit.
// now sert de référence pour le calcul des jours avant péremption.
func Generate(products []entity.Product, customers []entity.Customer, now time.Time) []entity.Alert {
	var alerts []entity.Alert
	for i := range products {
		p := normalizeProduct(products[i])
		if a := stockAlert(p, now); a != nil {
			alerts = append(alerts, *a)
		}
		if a := expiryAlert(p, now); a != nil {
			alerts = append(alerts, *a)
		}
	}
	for i := range customers {
		if a := creditAlert(customers[i], now); a != nil {
			alerts = append(alerts, *a)
		}
	}
	return alerts
}

// normalizeProduct remet les champs aberrants de l'instantané à des valeurs
// saines plutôt que de les propager dans l'arithmétique: quantité négative → 0,
// seuil négatif → seuil par défaut.
func normalizeProduct(p entity.Product) entity.Product {
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	if p.StockAlertThreshold < 0 {
		p.StockAlertThreshold = entity.DefaultStockAlertThreshold
	}
	return p
}

// stockAlert émet une alerte quand StockQuantity <= StockAlertThreshold.
// Critique uniquement en rupture totale (quantité zéro).
func stockAlert(p entity.Product, now time.Time) *entity.Alert {
	if p.StockQuantity > p.StockAlertThreshold {
		return nil
	}
	severity := entity.SeverityWarning
	title := "Stock faible"
	if p.StockQuantity == 0 {
		severity = entity.SeverityCritical
		title = "Rupture de stock"
	}
	productID := p.ID
	return &entity.Alert{
		ID:        uuid.New().String(),
		UserID:    p.UserID,
		Type:      entity.AlertTypeStock,
		Severity:  severity,
		Title:     title,
		Message:   fmt.Sprintf("%s - %d unités restantes", p.Name, p.StockQuantity),
		ProductID: &productID,
		CreatedAt: now,
	}
}

// expiryAlert émet une alerte selon le nombre de jours avant péremption:
//
//	days <= 0        → critique "Produit périmé"
//	0 < days <= 2    → critique "Péremption imminente"
//	2 < days <= 7    → warning  "Péremption proche"
//	days > 7         → rien
func expiryAlert(p entity.Product, now time.Time) *entity.Alert {
	if p.ExpiryDate == nil {
		return nil
	}
	days := daysUntil(*p.ExpiryDate, now)
	if days > expiryHorizonDays {
		return nil
	}

	var severity, title, msg string
	switch {
	case days <= 0:
		severity = entity.SeverityCritical
		title = "Produit périmé"
		msg = fmt.Sprintf("%s - Expiré depuis %d jour(s)", p.Name, -days)
	case days <= expiryCriticalDays:
		severity = entity.SeverityCritical
		title = "Péremption imminente"
		msg = fmt.Sprintf("%s - Expire dans %d jour(s)", p.Name, days)
	default:
		severity = entity.SeverityWarning
		title = "Péremption proche"
		msg = fmt.Sprintf("%s - Expire dans %d jour(s)", p.Name, days)
	}

	productID := p.ID
	return &entity.Alert{
		ID:        uuid.New().String(),
		UserID:    p.UserID,
		Type:      entity.AlertTypeExpiry,
		Severity:  severity,
		Title:     title,
		Message:   msg,
		ProductID: &productID,
		CreatedAt: now,
	}
}

// creditAlert émet une alerte quand la créance dépasse strictement 10 000 DA,
// critique au-delà de 20 000 DA. Une créance exactement au seuil n'émet rien.
func creditAlert(c entity.Customer, now time.Time) *entity.Alert {
	if !c.TotalDebt.GreaterThan(DebtWarningThreshold) {
		return nil
	}
	severity := entity.SeverityWarning
	if c.TotalDebt.GreaterThan(DebtCriticalThreshold) {
		severity = entity.SeverityCritical
	}
	customerID := c.ID
	return &entity.Alert{
		ID:         uuid.New().String(),
		UserID:     c.UserID,
		Type:       entity.AlertTypeCredit,
		Severity:   severity,
		Title:      "Créance élevée",
		Message:    fmt.Sprintf("%s - %s", c.Name, money.FormatDA(c.TotalDebt)),
		CustomerID: &customerID,
		CreatedAt:  now,
	}
}

// daysUntil renvoie le nombre de jours avant l'échéance, arrondi au supérieur
// sur la différence brute des horodatages (granularité calendaire: une échéance
// dans 36h compte pour 2 jours). Négatif si l'échéance est passée.
func daysUntil(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}
