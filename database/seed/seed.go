// Package seed loads demo branches and FAQ entries into an empty database.
package seed

import (
	"context"
	"fmt"

	branchRepo "branchbook/database/repository/branch"
	faqRepo "branchbook/database/repository/faq"
	"branchbook/models"
)

// DemoBranches all work 08:00-16:00 in 30 minute slots.
var DemoBranches = []models.Branch{
	{Name: "Centar", Address: "Knez Mihailova 12", City: "Beograd", OpenMinute: 8 * 60, CloseMinute: 16 * 60, SlotMinutes: 30},
	{Name: "Novi Beograd", Address: "Bulevar Mihajla Pupina 85", City: "Beograd", OpenMinute: 8 * 60, CloseMinute: 16 * 60, SlotMinutes: 30},
	{Name: "Liman", Address: "Bulevar oslobođenja 102", City: "Novi Sad", OpenMinute: 8 * 60, CloseMinute: 16 * 60, SlotMinutes: 30},
	{Name: "Medijana", Address: "Obrenovićeva 5", City: "Niš", OpenMinute: 8 * 60, CloseMinute: 16 * 60, SlotMinutes: 30},
}

var DemoFAQs = []models.FAQEntry{
	{Intent: "docs_required", Category: "racuni", Question: "Šta je potrebno za otvaranje tekućeg računa?",
		Answer: "Važeća lična karta ili pasoš i potvrda o zaposlenju ili primanjima.", IsActive: true},
	{Intent: "faq", Category: "kartice", Question: "Kako da blokiram izgubljenu karticu?",
		Answer: "Pozovite kontakt centar 0-24 ili blokirajte karticu u mobilnoj aplikaciji.", IsActive: true},
	{Intent: "faq", Category: "krediti", Question: "Koliko traje odobravanje gotovinskog kredita?",
		Answer: "Odluka se obično donosi u roku od jednog radnog dana nakon predaje kompletne dokumentacije.", IsActive: true},
}

// Branches inserts DemoBranches when the collection is empty and reports how many were added.
func Branches(ctx context.Context, repo branchRepo.BranchRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count branches: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	for i := range DemoBranches {
		b := DemoBranches[i]
		if err := repo.Create(ctx, &b); err != nil {
			return i, fmt.Errorf("seed branch %q: %w", b.Name, err)
		}
	}
	return len(DemoBranches), nil
}

// FAQs inserts DemoFAQs when the collection is empty.
func FAQs(ctx context.Context, repo faqRepo.FAQRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count faq entries: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	for i := range DemoFAQs {
		e := DemoFAQs[i]
		if err := repo.Create(ctx, &e); err != nil {
			return i, fmt.Errorf("seed faq %q: %w", e.Question, err)
		}
	}
	return len(DemoFAQs), nil
}
