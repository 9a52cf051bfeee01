package i18n

import "github.com/kosmosbot/kosmos/internal/models"

var messages = map[string]map[string]string{
	models.LanguageEnglish: {
		"welcome_message": "👋 Welcome to Kosmos!\n\n" +
			"I'm your personal reminder bot. Just type what you need and when, for example:\n\n" +
			"• Buy milk 18:00\n" +
			"• Call mom tomorrow 9:00\n" +
			"• Gym mon 19:30\n\n" +
			"Use /help to see everything I can do.",
		"welcome_back": "👋 Welcome back! Type a reminder like 'Buy milk 18:00' or use /help.",

		"timezone_question": "🌍 Which timezone are you in? Pick one below so reminders arrive at the right local time.",
		"timezone_selected": "✅ Timezone set to {timezone}.",
		"timezone_changed":  "✅ Timezone changed to {timezone}.",

		"error_occurred": "⚠️ Something went wrong. Please try again.",

		"help_message": "📖 *Kosmos commands*\n\n" +
			"/list - View upcoming reminders\n" +
			"/recurring - Create a recurring reminder\n" +
			"/settings - Change language, time format or timezone\n" +
			"/netstats - Network statistics\n" +
			"/help - Show this message\n\n" +
			"To create a reminder just type the text followed by the time:\n" +
			"• Buy milk 18:00\n" +
			"• Call John tomorrow 9am\n" +
			"• Rent 01.09. 10:00",
		"new_reminder_prompt": "✍️ Just type your reminder with a time at the end, e.g. 'Buy milk 18:00'.",

		"reminder_parse_error": "🤔 I couldn't find a time in that. End the message with a time, " +
			"e.g. 'Buy milk 18:00' or 'Call mom tomorrow 9am'.",
		"reminder_in_past": "⏰ That time has already passed. Try a future time.",

		"list_empty":               "📋 No upcoming reminders. Type one like 'Buy milk 18:00' to create it.",
		"list_header":              "📋 *Your reminders:*",
		"list_at":                  "at",
		"delete_button":            "🗑️ Delete #{index}",
		"reminder_deleted":         "🗑️ Reminder deleted",
		"recurring_deleted":        "Recurring reminder deleted",
		"delete_recurring_confirm": "🔁 *Recurring Reminder*\n\nDo you want to permanently delete this recurring reminder?",
		"delete_forever":           "🗑️ Delete Forever",
		"cancel":                   "❌ Cancel",
		"cancelled":                "Cancelled",

		"recurring_usage": "🔁 *Recurring reminders*\n\n" +
			"Usage:\n" +
			"/recurring daily 09:00 Take vitamins\n" +
			"/recurring every 3 09:00 Water plants\n" +
			"/recurring weekly mon,fri 18:00 Gym\n" +
			"/recurring monthly 15 12:00 Pay rent",
		"recurring_created": "✅ Recurring reminder created!\n\n📝 {text}\n🔁 {description}\n⏰ First: {first}",

		"custom_time_prompt":      "🕐 When should I remind you instead? Send a time like '18:30', 'tomorrow 9:00' or '25.12. 10:00'.",
		"custom_time_parse_error": "🤔 I couldn't understand that time. Try '18:30' or 'tomorrow 9:00'.",
		"postpone_1d":             "1 day",
		"postpone_custom":         "Custom time",

		"settings_menu": "⚙️ *Settings*\n\n" +
			"Language: {lang_name}\n" +
			"Time format: {time_format}\n" +
			"Timezone: {timezone}\n\n" +
			"What do you want to change?",
		"settings_language":    "🌐 Language",
		"settings_time_format": "🕐 Time format",
		"settings_timezone":    "🌍 Timezone",
		"select_language":      "🌐 Choose your language:",
		"select_time_format":   "🕐 Choose your time format:",
		"select_timezone":      "🌍 Choose your timezone:",
		"language_english":     "🇬🇧 English",
		"language_serbian":     "🇷🇸 Srpski",
		"language_changed":     "✅ Language changed to English",
		"time_format_12h":      "🕐 12h (AM/PM)",
		"time_format_24h":      "🕐 24h",
		"time_format_changed":  "✅ Time format changed to {format}",
		"settings_back":        "⬅️ Back",
	},

	models.LanguageSerbian: {
		"welcome_message": "👋 Dobrodošao u Kosmos!\n\n" +
			"Ja sam tvoj lični bot za podsetnike. Samo napiši šta i kada, na primer:\n\n" +
			"• Kupi mleko 18:00\n" +
			"• Pozovi mamu sutra 9:00\n" +
			"• Teretana pon 19:30\n\n" +
			"Koristi /help da vidiš sve što umem.",
		"welcome_back": "👋 Dobrodošao nazad! Napiši podsetnik kao 'Kupi mleko 18:00' ili koristi /help.",

		"timezone_question": "🌍 U kojoj si vremenskoj zoni? Izaberi jednu ispod da podsetnici stižu u pravo lokalno vreme.",
		"timezone_selected": "✅ Vremenska zona podešena na {timezone}.",
		"timezone_changed":  "✅ Vremenska zona promenjena na {timezone}.",

		"error_occurred": "⚠️ Nešto je pošlo po zlu. Pokušaj ponovo.",

		"help_message": "📖 *Kosmos komande*\n\n" +
			"/list - Pregled predstojećih podsetnika\n" +
			"/recurring - Napravi ponavljajući podsetnik\n" +
			"/settings - Promeni jezik, format vremena ili vremensku zonu\n" +
			"/netstats - Statistika mreže\n" +
			"/help - Prikaži ovu poruku\n\n" +
			"Za novi podsetnik samo napiši tekst pa vreme na kraju:\n" +
			"• Kupi mleko 18:00\n" +
			"• Pozovi Jovana sutra 9:00\n" +
			"• Kirija 01.09. 10:00",
		"new_reminder_prompt": "✍️ Samo napiši podsetnik sa vremenom na kraju, npr. 'Kupi mleko 18:00'.",

		"reminder_parse_error": "🤔 Nisam našao vreme u poruci. Završi poruku vremenom, " +
			"npr. 'Kupi mleko 18:00' ili 'Pozovi mamu sutra 9:00'.",
		"reminder_in_past": "⏰ To vreme je već prošlo. Probaj neko buduće vreme.",

		"list_empty":               "📋 Nema predstojećih podsetnika. Napiši npr. 'Kupi mleko 18:00' da ga napraviš.",
		"list_header":              "📋 *Tvoji podsetnici:*",
		"list_at":                  "u",
		"delete_button":            "🗑️ Obriši #{index}",
		"reminder_deleted":         "🗑️ Podsetnik obrisan",
		"recurring_deleted":        "Ponavljajući podsetnik obrisan",
		"delete_recurring_confirm": "🔁 *Ponavljajući podsetnik*\n\nŽeliš li da trajno obrišeš ovaj ponavljajući podsetnik?",
		"delete_forever":           "🗑️ Obriši zauvek",
		"cancel":                   "❌ Otkaži",
		"cancelled":                "Otkazano",

		"recurring_usage": "🔁 *Ponavljajući podsetnici*\n\n" +
			"Upotreba:\n" +
			"/recurring daily 09:00 Uzmi vitamine\n" +
			"/recurring every 3 09:00 Zalij cveće\n" +
			"/recurring weekly pon,pet 18:00 Teretana\n" +
			"/recurring monthly 15 12:00 Plati kiriju",
		"recurring_created": "✅ Ponavljajući podsetnik kreiran!\n\n📝 {text}\n🔁 {description}\n⏰ Prvi put: {first}",

		"custom_time_prompt":      "🕐 Kada da te podsetim umesto toga? Pošalji vreme kao '18:30', 'sutra 9:00' ili '25.12. 10:00'.",
		"custom_time_parse_error": "🤔 Nisam razumeo to vreme. Probaj '18:30' ili 'sutra 9:00'.",
		"postpone_1d":             "1 dan",
		"postpone_custom":         "Drugo vreme",

		"settings_menu": "⚙️ *Podešavanja*\n\n" +
			"Jezik: {lang_name}\n" +
			"Format vremena: {time_format}\n" +
			"Vremenska zona: {timezone}\n\n" +
			"Šta želiš da promeniš?",
		"settings_language":    "🌐 Jezik",
		"settings_time_format": "🕐 Format vremena",
		"settings_timezone":    "🌍 Vremenska zona",
		"select_language":      "🌐 Izaberi jezik:",
		"select_time_format":   "🕐 Izaberi format vremena:",
		"select_timezone":      "🌍 Izaberi vremensku zonu:",
		"language_english":     "🇬🇧 English",
		"language_serbian":     "🇷🇸 Srpski",
		"language_changed":     "✅ Jezik promenjen na srpski",
		"time_format_12h":      "🕐 12h (AM/PM)",
		"time_format_24h":      "🕐 24h",
		"time_format_changed":  "✅ Format vremena promenjen na {format}",
		"settings_back":        "⬅️ Nazad",
	},
}
