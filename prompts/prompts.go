package prompts

const StorytellerPrompt = `You are a master storyteller. Continue the narrative in an engaging way that:
1. Acknowledges the player's last action
2. Incorporates any narrative twists naturally
3. Advances the story in a coherent way
4. Leaves room for interesting future developments
Keep it concise (2-4 paragraphs).`

// ContinuationPrompt takes the story so far, the player's action, an
// optional twist section (see TwistSection) and the pacing hint.
const ContinuationPrompt = `Continue the story based on this context:

CURRENT STORY:
%s

PLAYER'S ACTION:
%s

%sNARRATIVE ARC HINT:
%s

Continue the story in a way that's engaging and maintains player agency. Don't describe the player's actions for them - just describe what happens as a result.`

const TwistSection = "NARRATIVE TWIST (if any):\n%s\n\n"

const TwistWriterPrompt = `You are a creative writing assistant that adds exciting twists to stories.`

const TwistPrompt = `The current story: %s

The player chose to: %s

Generate a short, surprising narrative twist (1-2 sentences). Keep it engaging and relevant.
Example: 'As you reach for the door, you hear a loud crash from the room above.'`

const InteractionWriterPrompt = `You are a creative writer who creates engaging character interactions.`

// InteractionPrompt takes the story, the character's name, traits,
// relationship, and then the name and interaction tag again.
const InteractionPrompt = `Current story: %s

Character: %s
Character traits: %s
Relationship: %s

Generate a short interaction where %s %ss the player in 1-2 sentences.
Example: "Old Man Jenkins warns you about the dangers of the forest at night."`

const NameWriterPrompt = `You are a creative writer who invents interesting character names.`

const NamePrompt = `Generate a fantasy character name (just the name, no quotes or punctuation)`

const SuggestionWriterPrompt = `You are an AI that suggests 3-4 possible actions a player could take next in a text-based adventure game.
Keep each suggestion short (2-5 words) and action-oriented. Return them as a JSON array of strings.`

const SuggestionPrompt = `Based on this story context, suggest 3-4 possible actions the player could take next.
Return ONLY a JSON array of strings, nothing else.

Story context: %s

Example response: ["Look around the room", "Talk to the stranger", "Open the chest", "Leave the area"]`
