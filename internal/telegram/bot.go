package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mealmode/internal/app"
	"mealmode/internal/config"
	"mealmode/internal/metrics"
	"mealmode/internal/planner"
)

// Bot exposes the weekly plan and the shopping checklist over Telegram.
// It is the single interactive writer of the bought-state store: checklist
// lines are toggled through inline keyboard buttons.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{api: bot, app: application, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if b.isAllowed(update.CallbackQuery.From.ID) {
			b.handleCallbackQuery(update.CallbackQuery)
		}
		return
	}

	if update.Message == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(userID int64) bool {
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch {
	case strings.HasPrefix(msg.Text, "/plan"):
		b.handlePlanRequest(msg.Chat.ID)
	case strings.HasPrefix(msg.Text, "/shopping"):
		b.handleShoppingRequest(msg.Chat.ID)
	case strings.HasPrefix(msg.Text, "/status"):
		b.handleStatusRequest(msg)
	default:
		reply := tgbotapi.NewMessage(msg.Chat.ID, "Commands:\n/plan — this week's meal plan\n/shopping — shopping checklist\n/status — system health")
		b.api.Send(reply)
	}
}

// CurrentWeekStart returns the Monday of the week containing t, at midnight
// UTC.
func CurrentWeekStart(t time.Time) time.Time {
	return planner.GetNextMonday(t).AddDate(0, 0, -7)
}

func (b *Bot) handlePlanRequest(chatID int64) {
	ctx := context.Background()
	weekStart := CurrentWeekStart(time.Now())

	plan, err := b.app.Plans.GetByWeek(ctx, weekStart)
	if err != nil {
		log.Printf("Error loading plan: %v", err)
		b.sendMarkdown(chatID, "❌ Error loading the meal plan.")
		return
	}
	if plan == nil || len(plan.Entries) == 0 {
		b.sendMarkdown(chatID, "🗓️ Nothing planned for this week yet.")
		return
	}

	recipeIDs := make([]int64, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		recipeIDs = append(recipeIDs, e.RecipeID)
	}
	recipes, err := b.app.Recipes.GetByIDs(ctx, recipeIDs)
	if err != nil {
		log.Printf("Error loading recipes: %v", err)
		b.sendMarkdown(chatID, "❌ Error loading the meal plan.")
		return
	}
	names := make(map[int64]string, len(recipes))
	for _, rec := range recipes {
		names[rec.ID] = rec.Name
	}

	b.sendMarkdown(chatID, formatPlanMarkdown(plan, names))
}

func formatPlanMarkdown(plan *planner.WeekPlan, recipeNames map[int64]string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Meal Plan — week of %s*\n\n", plan.WeekStart.Format("2006-01-02")))

	for _, day := range planner.Days() {
		var lines []string
		for _, slot := range planner.Slots() {
			entry := plan.At(day, slot)
			if entry == nil {
				continue
			}
			name := recipeNames[entry.RecipeID]
			if name == "" {
				name = fmt.Sprintf("recipe #%d", entry.RecipeID)
			}
			lines = append(lines, fmt.Sprintf("  %s: %s (%s servings)", slot, name, strconv.FormatFloat(entry.Servings, 'f', -1, 64)))
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s*\n%s\n", day, strings.Join(lines, "\n")))
	}
	return sb.String()
}

func (b *Bot) handleShoppingRequest(chatID int64) {
	ctx := context.Background()
	view, err := b.app.WeeklyShoppingList(ctx, CurrentWeekStart(time.Now()))
	if err != nil {
		log.Printf("Error building shopping list: %v", err)
		b.sendMarkdown(chatID, "❌ Error building the shopping list.")
		return
	}

	text, keyboard := formatChecklist(view)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	b.api.Send(msg)
}

// formatChecklist renders the checklist message and its toggle keyboard.
// Callback data is limited to 64 bytes, so buttons carry the list identity
// and the item's position rather than the full item key.
func formatChecklist(view *app.ShoppingListView) (string, *tgbotapi.InlineKeyboardMarkup) {
	if view.PlannedEntries == 0 {
		return "🗓️ Nothing planned for this week yet.", nil
	}
	if len(view.Items) == 0 {
		return "✅ Everything for this week is already on hand.", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛒 *Shopping List — week of %s*\nTap an item to mark it bought.\n", view.WeekStart.Format("2006-01-02")))

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(view.Items))
	for i, item := range view.Items {
		mark := "◻"
		if item.Bought {
			mark = "✅"
		}
		label := fmt.Sprintf("%s %s — %s", mark, item.Name, item.DisplayLabel)
		data := fmt.Sprintf("t|%s|%d", view.ListID, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return sb.String(), &keyboard
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	parts := strings.Split(query.Data, "|")
	if len(parts) != 3 || parts[0] != "t" {
		return
	}
	listID := parts[1]
	idx, err := strconv.Atoi(parts[2])
	if err != nil {
		return
	}

	ctx := context.Background()
	view, err := b.app.WeeklyShoppingList(ctx, CurrentWeekStart(time.Now()))
	if err != nil {
		log.Printf("Error rebuilding shopping list: %v", err)
		return
	}

	// The plan may have changed since the keyboard was sent; a stale list
	// identity means the checklist no longer applies.
	if view.ListID != listID || idx < 0 || idx >= len(view.Items) {
		b.api.Request(tgbotapi.NewCallback(query.ID, "This list is out of date — send /shopping again."))
		return
	}

	item := view.Items[idx]
	if err := b.app.SetBought(listID, item.Key, !item.Bought); err != nil {
		log.Printf("Error toggling bought state: %v", err)
		b.api.Request(tgbotapi.NewCallback(query.ID, "Failed to save."))
		return
	}
	view.Items[idx].Bought = !item.Bought

	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	_, keyboard := formatChecklist(view)
	if keyboard != nil {
		edit := tgbotapi.NewEditMessageReplyMarkup(query.Message.Chat.ID, query.Message.MessageID, *keyboard)
		b.api.Send(edit)
	}
}

func (b *Bot) handleStatusRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.sendMarkdown(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	health := metrics.Collect("data")

	var sb strings.Builder
	sb.WriteString("🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))
	b.sendMarkdown(msg.Chat.ID, sb.String())
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}
