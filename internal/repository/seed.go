package repository

import (
	"context"
	"fmt"

	"github.com/JonathanThomaz/catalogo-produtos/internal/domain"
	"gorm.io/gorm"
)

// Fixtures returns the demo catalog loaded by Seed.
func Fixtures() []domain.Product {
	return []domain.Product{
		{
			Title:       "iPhone 15 Pro",
			Description: "O mais avançado iPhone com chip A17 Pro, câmera profissional e tela Super Retina XDR de 6,1 polegadas. Disponível em titânio natural.",
			Price:       domain.MustPrice("7999.99"),
		},
		{
			Title:       "MacBook Air M2",
			Description: "Notebook ultrafino com chip M2, tela Liquid Retina de 13,6 polegadas, bateria que dura o dia todo e design em alumínio reciclado.",
			Price:       domain.MustPrice("12999.00"),
		},
		{
			Title:       "Samsung Galaxy S24 Ultra",
			Description: "Smartphone premium com S Pen integrada, câmera de 200MP, tela Dynamic AMOLED 2X de 6,8 polegadas e 5G ultrarrápido.",
			Price:       domain.MustPrice("8499.99"),
		},
		{
			Title:       "Sony PlayStation 5",
			Description: "Console de videogame de última geração com SSD ultrarrápido, Ray Tracing em tempo real e áudio 3D imersivo.",
			Price:       domain.MustPrice("4199.90"),
		},
		{
			Title:       "Nintendo Switch OLED",
			Description: "Console híbrido com tela OLED vibrante de 7 polegadas, áudio aprimorado e base com porta LAN integrada.",
			Price:       domain.MustPrice("2499.99"),
		},
		{
			Title:       "AirPods Pro (2ª geração)",
			Description: "Fones de ouvido com cancelamento ativo de ruído, áudio espacial personalizado e case de carregamento MagSafe.",
			Price:       domain.MustPrice("2299.00"),
		},
		{
			Title:       "Dell XPS 13",
			Description: "Ultrabook premium com processador Intel Core i7, tela InfinityEdge 13,4 polegadas e construção em fibra de carbono.",
			Price:       domain.MustPrice("9899.99"),
		},
		{
			Title:       "iPad Pro 12.9\"",
			Description: "Tablet profissional com chip M2, tela Liquid Retina XDR, suporte ao Apple Pencil e Magic Keyboard.",
			Price:       domain.MustPrice("13499.00"),
		},
	}
}

// Seed replaces the content of the products table with Fixtures and returns
// the number of rows created.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	products := Fixtures()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Product{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to insert fixtures: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(products), nil
}
