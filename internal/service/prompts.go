package service

// Fixed prompt and fallback texts. The analysis and note prompts ask for Urdu
// output; the fallbacks are the exact user-facing strings shown when a
// capability call fails or returns nothing.
const (
	analysisPrompt = `Analyze these graveyard records for a small local cemetery.
    Provide the analysis strictly in Urdu.
    Summarize trends in lifespan and mortality over time based on the data provided.
    Keep the tone respectful and professional.

    Data: `

	notesPrompt = `Generate a short, respectful memorial note in Urdu for a burial record for %s.
    Provide 2 variations. Max 30 words each. Use beautiful Urdu poetic or traditional language.`

	// analysisFallback is shown when the analysis call errors.
	analysisFallback = "تجزیہ کرنے میں دشواری پیش آئی۔"

	// noTrendMessage is shown when the analysis call succeeds but returns nothing.
	noTrendMessage = "موجودہ ڈیٹا میں کوئی خاص رجحان نہیں ملا۔"

	// NotesFallback is the fixed message surfaced when note suggestion fails.
	NotesFallback = "اللہ غریقِ رحمت کرے۔"

	// scanNotesPrefix labels extracted notes appended to existing ones.
	scanNotesPrefix = "خودکار معلومات:"
)
