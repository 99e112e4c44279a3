package services

import (
	"fmt"
	"strings"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/models"
)

// entryPromptData is what the per-entry user document is rendered from.
type entryPromptData struct {
	Title     string
	Mood      string
	CreatedAt string
	Content   string
}

type entryMessages struct {
	unauthorized   string
	notFound       string
	fetchFailure   string
	configuration  string
	summaryFailure string
	saveFailure    string
}

type entryLocale struct {
	system      string
	user        func(entryPromptData) string
	untitled    string
	unspecified string
	messages    entryMessages
}

var entryLocales = [...]entryLocale{
	i18n.Indonesian: {
		system: "Kamu adalah mentor journaling yang empatik dan berbicara dalam bahasa Indonesia. " +
			"Ringkaslah isi jurnal secara singkat (maksimal 120 kata) dan berikan satu saran yang spesifik " +
			"serta dapat segera dilakukan. Jawab HANYA dalam format JSON tanpa blok kode, dengan key `summary` " +
			"dan `suggestion`, keduanya dalam bahasa Indonesia.",
		user: func(d entryPromptData) string {
			return fmt.Sprintf("Judul jurnal: %s\nMood (opsional): %s\nDibuat pada (UTC): %s\n\nIsi:\n%s",
				d.Title, d.Mood, d.CreatedAt, d.Content)
		},
		untitled:    i18n.For(i18n.Indonesian).T("common.untitled"),
		unspecified: i18n.For(i18n.Indonesian).T("common.unspecified"),
		messages: entryMessages{
			unauthorized:   "Kamu perlu masuk untuk melanjutkan.",
			notFound:       "Jurnal tidak ditemukan",
			fetchFailure:   "Gagal memuat jurnal.",
			configuration:  "OPENAI_API_KEY belum diatur. Tambahkan ke konfigurasi server.",
			summaryFailure: "Gagal menghasilkan ringkasan AI.",
			saveFailure:    "Gagal menyimpan ringkasan.",
		},
	},
	i18n.English: {
		system: "You are an empathetic journaling coach speaking English. Summarise the journal entry " +
			"concisely (up to 120 words) and provide one actionable suggestion grounded in the entry. " +
			"Respond ONLY as JSON without code fences, using the keys `summary` and `suggestion`, both in English.",
		user: func(d entryPromptData) string {
			return fmt.Sprintf("Journal title: %s\nMood (optional): %s\nCreated at (UTC): %s\n\nEntry:\n%s",
				d.Title, d.Mood, d.CreatedAt, d.Content)
		},
		untitled:    i18n.For(i18n.English).T("common.untitled"),
		unspecified: i18n.For(i18n.English).T("common.unspecified"),
		messages: entryMessages{
			unauthorized:   "You need to sign in to continue.",
			notFound:       "Journal not found",
			fetchFailure:   "Failed to load the journal.",
			configuration:  "OPENAI_API_KEY is not set. Add it to the server configuration.",
			summaryFailure: "Failed to generate AI summary.",
			saveFailure:    "Failed to save summary.",
		},
	},
}

func entryLocaleFor(l i18n.Locale) entryLocale {
	if l < 0 || int(l) >= len(entryLocales) {
		l = i18n.Default
	}
	return entryLocales[l]
}

type weeklyMessages struct {
	unauthorized   string
	configuration  string
	checkFailure   string
	fetchFailure   string
	noEntries      string
	summaryFailure string
	saveFailure    string
}

type blockLabels struct {
	entry   string
	date    string
	title   string
	content string
}

type weeklyLocale struct {
	system      string
	user        func(weekStart, weekEnd, entries string) string
	labels      blockLabels
	untitled    string
	unspecified string
	messages    weeklyMessages
}

var weeklyLocales = [...]weeklyLocale{
	i18n.Indonesian: {
		system: "Kamu adalah analis journaling yang reflektif dan hangat dalam bahasa Indonesia. " +
			"Olahlah kumpulan jurnal mingguan untuk menghasilkan ringkasan 3-5 kalimat dan satu rekomendasi " +
			"konkret yang bisa dilakukan minggu depan. Jawab hanya dalam JSON tanpa blok kode dengan field " +
			"`summary` dan `suggestion`, keduanya bahasa Indonesia.",
		user: func(weekStart, weekEnd, entries string) string {
			return fmt.Sprintf("Ringkasan mingguan untuk rentang %s hingga %s.\n\nKumpulan entri:\n%s",
				weekStart, weekEnd, entries)
		},
		labels:      blockLabels{entry: "Entri", date: "Tanggal", title: "Judul", content: "Isi"},
		untitled:    i18n.For(i18n.Indonesian).T("common.untitled"),
		unspecified: i18n.For(i18n.Indonesian).T("common.unspecified"),
		messages: weeklyMessages{
			unauthorized:   "Kamu perlu masuk untuk melanjutkan.",
			configuration:  "OPENAI_API_KEY belum diatur. Tambahkan ke konfigurasi server.",
			checkFailure:   "Gagal memeriksa rekap minggu ini.",
			fetchFailure:   "Gagal mengambil jurnal untuk minggu ini.",
			noEntries:      "Belum ada jurnal yang ditulis minggu ini.",
			summaryFailure: "Gagal menghasilkan rekap mingguan.",
			saveFailure:    "Gagal menyimpan rekap mingguan.",
		},
	},
	i18n.English: {
		system: "You are a thoughtful, encouraging journaling analyst speaking English. Review the week's " +
			"entries and produce a summary of 3-5 sentences plus one concrete recommendation for next week. " +
			"Respond ONLY as JSON without code fences using the keys `summary` and `suggestion`, both in English.",
		user: func(weekStart, weekEnd, entries string) string {
			return fmt.Sprintf("Weekly recap covering %s through %s.\n\nEntries:\n%s",
				weekStart, weekEnd, entries)
		},
		labels:      blockLabels{entry: "Entry", date: "Date", title: "Title", content: "Content"},
		untitled:    i18n.For(i18n.English).T("common.untitled"),
		unspecified: i18n.For(i18n.English).T("common.unspecified"),
		messages: weeklyMessages{
			unauthorized:   "You need to sign in to continue.",
			configuration:  "OPENAI_API_KEY is not set. Add it to the server configuration.",
			checkFailure:   "Failed to check this week's recap.",
			fetchFailure:   "Couldn't fetch journals for this week.",
			noEntries:      "No journal entries were written this week.",
			summaryFailure: "Failed to generate the weekly recap.",
			saveFailure:    "Failed to save the weekly recap.",
		},
	},
}

func weeklyLocaleFor(l i18n.Locale) weeklyLocale {
	if l < 0 || int(l) >= len(weeklyLocales) {
		l = i18n.Default
	}
	return weeklyLocales[l]
}

// entryBlockSeparator sits between rendered entries in the weekly document.
const entryBlockSeparator = "\n\n---\n\n"

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// renderEntryBlocks numbers entries from 1 in the order given.
func renderEntryBlocks(entries []models.JournalEntry, loc weeklyLocale) string {
	blocks := make([]string, 0, len(entries))
	for i, e := range entries {
		blocks = append(blocks, fmt.Sprintf("%s %d\n%s: %s\n%s: %s\nMood: %s\n%s:\n%s",
			loc.labels.entry, i+1,
			loc.labels.date, formatInstant(e.CreatedAt),
			loc.labels.title, orPlaceholder(e.Title, loc.untitled),
			orPlaceholder(e.Mood, loc.unspecified),
			loc.labels.content, e.Content,
		))
	}
	return strings.Join(blocks, entryBlockSeparator)
}
