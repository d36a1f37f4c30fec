package classify

// DefaultRules returns the stock policy table for WhatsApp-style system
// phrasings. The table is ordered cheapest-first; regex rules that need
// word anchoring come last. Operators extend it via configuration rather
// than editing this list.
func DefaultRules() []Rule {
	return []Rule{
		{Kind: KindContains, Pattern: "messages and calls are end-to-end encrypted"},
		{Kind: KindContains, Pattern: "no one outside of this chat"},
		{Kind: KindContains, Pattern: "this message was deleted"},
		{Kind: KindContains, Pattern: "you deleted this message"},
		{Kind: KindContains, Pattern: "missed voice call"},
		{Kind: KindContains, Pattern: "missed video call"},
		{Kind: KindContains, Pattern: "missed group call"},
		{Kind: KindContains, Pattern: "created this group"},
		{Kind: KindContains, Pattern: "created this community"},
		{Kind: KindContains, Pattern: "created group"},
		{Kind: KindContains, Pattern: "changed the subject"},
		{Kind: KindContains, Pattern: "changed this group's icon"},
		{Kind: KindContains, Pattern: "changed the group description"},
		{Kind: KindContains, Pattern: "changed their phone number"},
		{Kind: KindContains, Pattern: "joined using this community's invite link"},
		{Kind: KindContains, Pattern: "joined using this group's invite link"},
		{Kind: KindContains, Pattern: "joined from the community"},
		{Kind: KindContains, Pattern: "tap to learn more"},
		{Kind: KindPrefix, Pattern: "you joined"},
		{Kind: KindPrefix, Pattern: "you left"},
		{Kind: KindPrefix, Pattern: "you were added"},
		{Kind: KindPrefix, Pattern: "you were removed"},
		{Kind: KindPrefix, Pattern: "you added"},
		{Kind: KindPrefix, Pattern: "you removed"},
		{Kind: KindPrefix, Pattern: "you created"},
		{Kind: KindPrefix, Pattern: "you're now an admin"},
		{Kind: KindPrefix, Pattern: "you're no longer an admin"},
		{Kind: KindPrefix, Pattern: "your security code with"},
		// "<name> joined" / "<name> left" rows end with the verb.
		{Kind: KindRegex, Pattern: `(^|\s)(joined|left)$`},
		// Add/remove rows have no stable shape ("Ana added Bea", "Bea was
		// removed"), so this matches the bare verb and is overbroad on
		// purpose.
		{Kind: KindRegex, Pattern: `\b(added|removed)\b`},
		{Kind: KindRegex, Pattern: `security code .*(changed|with)`},
	}
}
