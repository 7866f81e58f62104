package ai

// extractPrompt is the fixed headstone-reading instruction. Names and notes
// come back in Urdu script; dates are normalized to YYYY-MM-DD.
const extractPrompt = `You are an expert at reading Urdu (Nastaliq) headstones.
Carefully examine the provided image of a headstone (vertical photo).
Look specifically for:
- Keywords like "ولادت" (Waladat) followed by a year or date for birth. If only a year (e.g., 1990) is found, format it as YYYY-01-01.
- Keywords like "وفات" (Wafat) followed by a year or date for death.
- Keyword "عمر" (Age) followed by a number representing years lived.
- Names written in large Urdu script.
- Phrases like "بن" (son of) or "بنت" (daughter of) to identify parentNames.
- Phrases like "زوجہ" (wife of) to identify husbandName.

LOGIC FOR AGE:
- If the word "عمر" (Age) is present, extract the number.
- If "عمر" is NOT present but you found both birth and death years, calculate the age yourself (Death Year - Birth Year).
- Return the result in the 'ageAtDeath' field as an integer.

Return the results strictly in JSON format.
IMPORTANT: Provide the names and notes in Urdu script.
- deceasedFullName (In Urdu script)
- parentNames (Father/Mother mentioned, in Urdu script)
- husbandName (In Urdu script)
- dateOfBirth (YYYY-MM-DD format)
- dateOfDeath (YYYY-MM-DD format)
- ageAtDeath (Integer)
- notes (Urdu script)
- gender (Male, Female, or Other)

Only return JSON.`
