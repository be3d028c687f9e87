// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ahamlabs/aham/internal/presentation"
)

// softwareFlowchart ignores the topic; the software development loop is
// the same whatever prompted it.
const softwareFlowchart = `graph TD
    A[Requirements Analysis] --> B[System Design]
    B --> C[Implementation]
    C --> D[Testing]
    D --> E{Tests Pass?}
    E -->|No| F[Debug & Fix]
    F --> C
    E -->|Yes| G[Code Review]
    G --> H{Review Approved?}
    H -->|No| I[Address Feedback]
    I --> C
    H -->|Yes| J[Integration]
    J --> K[Deployment]
    K --> L[Monitoring]
    L --> M[Maintenance]
    M --> N{New Requirements?}
    N -->|Yes| A
    N -->|No| O[End]`

func businessTemplate(topic string) string {
	return fmt.Sprintf(`graph TD
    A[Start: %s] --> B[Identify Requirements]
    B --> C[Plan Strategy]
    C --> D[Allocate Resources]
    D --> E[Execute Process]
    E --> F[Monitor Progress]
    F --> G{Quality Check}
    G -->|Pass| H[Complete Process]
    G -->|Fail| I[Identify Issues]
    I --> J[Implement Corrections]
    J --> E
    H --> K[Document Results]
    K --> L[Review & Improve]
    L --> M[End]`, topic)
}

func sequenceTemplate(topic string) string {
	return fmt.Sprintf(`sequenceDiagram
    participant User
    participant System
    participant Database
    participant Service

    User->>System: Request %[1]s
    System->>Database: Query Data
    Database-->>System: Return Results
    System->>Service: Process Request
    Service-->>System: Processing Complete
    System-->>User: Response with %[1]s

    Note over User,Service: %[1]s Process Flow`, topic)
}

func classTemplate(topic string) string {
	ident := classIdent(topic)
	return fmt.Sprintf(`classDiagram
    class %[1]sManager {
        -id: string
        -name: string
        -status: string
        +create()
        +update()
        +delete()
        +get()
    }

    class %[1]sService {
        +process()
        +validate()
        +transform()
    }

    class %[1]sRepository {
        +save()
        +find()
        +update()
        +remove()
    }

    %[1]sManager --> %[1]sService
    %[1]sService --> %[1]sRepository`, ident)
}

func genericTemplate(topic string) string {
	return fmt.Sprintf(`graph TD
    A[Start: %s] --> B[Initialize]
    B --> C[Process Data]
    C --> D{Valid?}
    D -->|Yes| E[Continue Processing]
    D -->|No| F[Handle Error]
    F --> G[Log Error]
    G --> C
    E --> H[Generate Output]
    H --> I[Validate Output]
    I --> J{Output OK?}
    J -->|Yes| K[Complete]
    J -->|No| L[Retry]
    L --> C
    K --> M[End]`, topic)
}

// classIdent turns a free-form topic into a valid class identifier:
// "order tracking" becomes "OrderTracking".
func classIdent(topic string) string {
	var b strings.Builder
	for _, word := range strings.Fields(topic) {
		var clean []rune
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				clean = append(clean, r)
			}
		}
		if len(clean) == 0 {
			continue
		}
		clean[0] = unicode.ToUpper(clean[0])
		b.WriteString(string(clean))
	}
	if b.Len() == 0 {
		return defaultTopic
	}
	return b.String()
}

// deckTemplate is the fixed five-slide offline deck.
func deckTemplate(topic string) []presentation.Slide {
	return []presentation.Slide{
		{
			Type:     presentation.SlideTitle,
			Title:    topic,
			Subtitle: "A comprehensive overview",
		},
		{
			Type:  presentation.SlideContent,
			Title: "Overview",
			Content: strings.Join([]string{
				"- Introduction to " + topic,
				"- Key concepts and principles",
				"- Benefits and applications",
				"- Implementation strategies",
			}, "\n"),
		},
		{
			Type:  presentation.SlideContent,
			Title: "Key Benefits",
			Content: strings.Join([]string{
				"- Improved efficiency and productivity",
				"- Better organization and structure",
				"- Enhanced user experience",
				"- Scalable and maintainable solutions",
			}, "\n"),
		},
		{
			Type:  presentation.SlideContent,
			Title: "Implementation",
			Content: strings.Join([]string{
				"- Planning and preparation",
				"- Step-by-step execution",
				"- Testing and validation",
				"- Deployment and monitoring",
			}, "\n"),
		},
		{
			Type:  presentation.SlideContent,
			Title: "Conclusion",
			Content: topic + " provides significant value through improved processes and outcomes. Consider implementing these strategies for optimal results.",
		},
	}
}
