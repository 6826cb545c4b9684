package article

import (
	"fmt"
	"log"
	"time"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/article"
)

// seedArticles inserts the default catalog when the articles table is empty.
func seedArticles(repo *Repository) error {
	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("failed to count articles: %w", err)
	}
	if count > 0 {
		return nil
	}

	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	defaults := []*domain.Article{
		{Name: "Ordinador portàtil", Description: "Ordinador portàtil per oficina amb pantalla de 15.6 polzades", Price: 899.99, Stock: 10, Category: "Informàtica"},
		{Name: "Ratolí sense fils", Description: "Ratolí òptic sense fils amb sensor de precisió", Price: 25.50, Stock: 50, Category: "Informàtica"},
		{Name: "Teclat mecànic", Description: "Teclat mecànic retroil·luminat amb switches Cherry MX", Price: 120.00, Stock: 25, Category: "Informàtica"},
		{Name: "Monitor 24 polzades", Description: "Monitor LED Full HD 1920x1080 amb connexió HDMI", Price: 189.99, Stock: 15, Category: "Informàtica"},
		{Name: "Cadira d'oficina", Description: "Cadira ergonòmica amb suport lumbar ajustable", Price: 149.99, Stock: 8, Category: "Mobiliari"},
		{Name: "Impressora làser", Description: "Impressora làser monocrom amb connexió Wi-Fi", Price: 89.99, Stock: 12, Category: "Informàtica"},
		{Name: "Disc dur extern 1TB", Description: "Disc dur extern USB 3.0 de 1TB per còpies de seguretat", Price: 59.99, Stock: 30, Category: "Informàtica"},
		{Name: "Taula d'oficina", Description: "Taula d'oficina de fusta amb calaixos i organitzador", Price: 299.99, Stock: 5, Category: "Mobiliari"},
		{Name: "Auriculars Bluetooth", Description: "Auriculars inalàmbrics amb cancel·lació de soroll", Price: 79.99, Stock: 20, Category: "Àudio"},
		{Name: "Webcam HD", Description: "Càmera web Full HD 1080p amb micròfon integrat", Price: 45.99, Stock: 18, Category: "Informàtica"},
	}

	for _, article := range defaults {
		article.Active = true
		article.CreatedAt = createdAt
		if err := repo.Create(article); err != nil {
			return fmt.Errorf("failed to seed article %q: %w", article.Name, err)
		}
	}

	log.Printf("[article] Seeded %d default articles", len(defaults))
	return nil
}
