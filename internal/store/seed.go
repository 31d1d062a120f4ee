package store

import (
	"time"

	"github.com/optionshub/mediavault-server/internal/domain"
)

// SeedLibrary builds the initial document written on first run. The
// catalog ships with a small demo set so the operator surface is not
// empty before the first real item is added.
func SeedLibrary() *domain.Library {
	now := time.Now().UTC().Format(time.RFC3339)

	items := []domain.MediaItem{
		{
			ID: "1",
			Title: domain.MultilingualText{
				EN: "The Art of Code", RU: "Искусство кода", ES: "El arte del código",
			},
			Description: domain.MultilingualText{
				EN: "A deep dive into elegant software architecture.",
				RU: "Глубокое погружение в элегантную архитектуру ПО.",
				ES: "Una inmersión profunda en la arquitectura de software elegante.",
			},
			CoverURL:         "https://images.unsplash.com/photo-1555066931-4365d14bab8c?auto=format&fit=crop&q=80&w=400&h=600",
			Type:             "BOOK",
			Rating:           4.8,
			Author:           "John Developer",
			PublishedDate:    "2023-10-15",
			Formats:          []domain.FileFormat{{ID: "f1", Name: "PDF", URL: "#", Size: "2.4MB"}},
			VideoURL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Views:            1240,
			Downloads:        450,
			ContentLanguages: []domain.Locale{domain.LocaleEN, domain.LocaleRU},
		},
		{
			ID: "2",
			Title: domain.MultilingualText{
				EN: "Clean Architecture", RU: "Чистая архитектура", ES: "Arquitectura Limpia",
			},
			Description: domain.MultilingualText{
				EN: "A Craftsman's Guide to Software Structure and Design.",
				RU: "Руководство ремесленника по структуре и дизайну программного обеспечения.",
				ES: "Una guía del artesano para la estructura y el diseño del software.",
			},
			CoverURL:         "https://images.unsplash.com/photo-1531427186611-ecfd6d936c79?auto=format&fit=crop&q=80&w=400&h=600",
			Type:             "BOOK",
			Rating:           4.9,
			Author:           "Robert Martin",
			PublishedDate:    "2023-05-20",
			Formats:          []domain.FileFormat{{ID: "f2", Name: "EPUB", URL: "#", Size: "1.8MB"}},
			Views:            890,
			Downloads:        310,
			ContentLanguages: []domain.Locale{domain.LocaleEN},
		},
		{
			ID: "3",
			Title: domain.MultilingualText{
				EN: "The Pragmatic Programmer", RU: "Программист-прагматик", ES: "El Programador Pragmático",
			},
			Description: domain.MultilingualText{
				EN: "From Journeyman to Master. Your journey to mastery begins here.",
				RU: "Путь от подмастерья к мастеру. Ваше путешествие к мастерству начинается здесь.",
				ES: "De oficial a maestro. Tu viaje hacia la maestría comienza aquí.",
			},
			CoverURL:         "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?auto=format&fit=crop&q=80&w=400&h=600",
			Type:             "BOOK",
			Rating:           4.9,
			Author:           "Andrew Hunt",
			PublishedDate:    "2023-11-01",
			Formats:          []domain.FileFormat{{ID: "f3", Name: "PDF", URL: "#", Size: "4.2MB"}},
			IsPrivate:        true,
			Views:            2100,
			Downloads:        520,
			ContentLanguages: []domain.Locale{domain.LocaleEN, domain.LocaleRU, domain.LocaleES},
		},
		{
			ID: "4",
			Title: domain.MultilingualText{
				EN: "AI & ML Quarterly", RU: "AI и ML Ежеквартальник", ES: "IA y ML Trimestral",
			},
			Description: domain.MultilingualText{
				EN: "Latest breakthroughs in artificial intelligence and deep learning.",
				RU: "Последние достижения в области искусственного интеллекта и глубокого обучения.",
				ES: "Últimos avances en inteligencia artificial y aprendizaje profundo.",
			},
			CoverURL:         "https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&q=80&w=400&h=600",
			Type:             "JOURNAL",
			Rating:           4.7,
			Author:           "Tech Institute",
			PublishedDate:    "2024-01-10",
			Formats:          []domain.FileFormat{{ID: "f4", Name: "Interactive PDF", URL: "#", Size: "12.5MB"}},
			Views:            560,
			Downloads:        120,
			ContentLanguages: []domain.Locale{domain.LocaleEN},
		},
		{
			ID: "5",
			Title: domain.MultilingualText{
				EN: "Mastering Modern React", RU: "Освоение современного React", ES: "Dominando React Moderno",
			},
			Description: domain.MultilingualText{
				EN: "Advanced patterns and performance optimization in React 19.",
				RU: "Продвинутые паттерны и оптимизация производительности в React 19.",
				ES: "Patrones avanzados y optimización de rendimiento en React 19.",
			},
			CoverURL:         "https://images.unsplash.com/photo-1633356122544-f134324a6cee?auto=format&fit=crop&q=80&w=400&h=600",
			Type:             "VIDEO",
			Rating:           4.6,
			Author:           "Elena Smith",
			PublishedDate:    "2024-02-15",
			Formats:          []domain.FileFormat{{ID: "f5", Name: "Source Code", URL: "#", Size: "0.5MB"}},
			VideoURL:         "https://www.youtube.com/watch?v=Tn6-PIqc4UM",
			Views:            3400,
			Downloads:        880,
			ContentLanguages: []domain.Locale{domain.LocaleEN, domain.LocaleRU},
		},
		{
			ID: "6",
			Title: domain.MultilingualText{
				EN: "Pro TypeScript Patterns", RU: "TypeScript паттерны для профи", ES: "Patrones Pro de TypeScript",
			},
			Description: domain.MultilingualText{
				EN: "Deep dive into utility types and generics.",
				RU: "Глубокое погружение в служебные типы и дженерики.",
				ES: "Inmersión profunda en tipos de utilidad y genéricos.",
			},
			CoverURL:         "https://images.unsplash.com/photo-1516116216624-53e697fedbea?auto=format&fit=crop&q=80&w=400&h=600",
			Type:             "VIDEO",
			Rating:           4.9,
			Author:           "Alex Typer",
			PublishedDate:    "2023-12-12",
			Formats:          []domain.FileFormat{},
			VideoURL:         "https://www.youtube.com/watch?v=VguJQxBsc_0",
			IsPrivate:        true,
			Views:            1500,
			Downloads:        45,
			ContentLanguages: []domain.Locale{domain.LocaleEN},
		},
		{
			ID: "7",
			Title: domain.MultilingualText{
				EN: "Trading Psychology 101", RU: "Психология трейдинга 101", ES: "Psicología del Trading 101",
			},
			Description: domain.MultilingualText{
				EN: "Mastering your mind for consistent trading results.",
				RU: "Освоение своего разума для стабильных результатов в трейдинге.",
				ES: "Dominando tu mente para resultados de trading consistentes.",
			},
			CoverURL:         "https://images.unsplash.com/photo-1611974714024-462cd497ae98?auto=format&fit=crop&q=80&w=400&h=600",
			Type:             "VIDEO",
			Rating:           4.5,
			Author:           "Mark Market",
			PublishedDate:    "2024-03-01",
			Formats:          []domain.FileFormat{{ID: "f6", Name: "Workbook", URL: "#", Size: "1.2MB"}},
			VideoURL:         "https://www.youtube.com/watch?v=Yp69mS-rCnc",
			Views:            4200,
			Downloads:        1200,
			ContentLanguages: []domain.Locale{domain.LocaleRU, domain.LocaleEN},
		},
	}

	for i := range items {
		items[i].AddedDate = now
		items[i].AllowDownload = true
		items[i].AllowReading = true
	}

	return &domain.Library{
		SchemaVersion: domain.SchemaVersion,
		Items:         items,
		AllowedUsers:  []string{"admin_username", "pro_trader_77"},
		Blacklist:     []domain.BlockRule{},
		VisitLogs:     []domain.VisitLog{},
		Stats: []domain.StatPoint{
			{Date: "2023-10-01", Views: 120, Downloads: 40},
			{Date: "2023-10-02", Views: 150, Downloads: 55},
			{Date: "2023-10-03", Views: 110, Downloads: 30},
			{Date: "2023-10-04", Views: 180, Downloads: 80},
			{Date: "2023-10-05", Views: 220, Downloads: 90},
		},
		UserAnalytics:   []domain.UserAnalytics{},
		UserFavorites:   map[string][]string{},
		UserRatings:     map[string]map[string]int{},
		CustomTypes:     seedCustomTypes(),
		DefaultLanguage: domain.LocaleRU,
		BotConfig:       seedBotConfig(),
	}
}

func seedCustomTypes() []string {
	return []string{"BOOK", "ARTICLE", "JOURNAL", "VIDEO", "COURSE"}
}

func seedBotConfig() domain.BotConfig {
	return domain.BotConfig{
		Username: "OptionsHUB_Bot",
		WelcomeMessage: domain.MultilingualText{
			EN: "Welcome to OptionsHUB Digital Library! Access professional assets directly in Telegram.",
			RU: "Добро пожаловать в цифровую библиотеку OptionsHUB! Профессиональные активы прямо в Telegram.",
			ES: "¡Bienvenido a la biblioteca digital de OptionsHUB! Accede a activos profesionales directamente en Telegram.",
		},
	}
}
