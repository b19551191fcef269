package prompts

// defaultPrompts returns the built-in prompt pool used when no prompt file
// is configured
func defaultPrompts() []string {
	return []string{
		"What's the most embarrassing thing you've ever bought online?",
		"Describe your worst date in five words or fewer",
		"What's a food combination you secretly love?",
		"What would the title of your autobiography be?",
		"What's the weirdest thing you've done to avoid talking to someone?",
		"What's your most irrational fear?",
		"What's the pettiest reason you've stopped talking to someone?",
		"What's a hill you're willing to die on?",
		"What's the worst advice you've ever given with confidence?",
		"What's something you've pretended to understand for years?",
		"What's the strangest thing in your search history right now?",
		"What's your go-to excuse for leaving a party early?",
		"What's a talent you have that's completely useless?",
		"What's the longest you've worn the same item of clothing?",
		"What's the most childish thing you still do?",
		"What's a movie everyone loves that you secretly hate?",
		"What's the weirdest compliment you've ever received?",
		"What would you do with a free, consequence-free day?",
		"What's the dumbest way you've ever injured yourself?",
		"What's something you'd never admit on a first date?",
		"What's the worst haircut you've ever had, in detail?",
		"What's your most controversial kitchen opinion?",
		"What's a song you know every word to but would never admit?",
		"What fictional character do you think you could beat in a fight?",
		"What's the laziest thing you've done this month?",
	}
}
