package prompts

// Shape descriptors for the structured operations. These mirror the
// JSON structures the prompts ask for; providers translate them into
// their native schema format.

func flashcardsSchema() *Schema {
	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"front": {Type: TypeString},
				"back":  {Type: TypeString},
			},
			Required: []string{"front", "back"},
		},
	}
}

func writtenQuestionSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"question": {Type: TypeString},
			"answer":   {Type: TypeString},
		},
	}
}

// qaSetSchema describes all six categories regardless of the requested
// counts; the prompt text controls which ones are populated.
func qaSetSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"fillInTheBlanks": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"question": {Type: TypeString, Description: "Sentence with a blank represented by underscores"},
						"answer":   {Type: TypeString},
					},
				},
			},
			"mcq": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"question":      {Type: TypeString},
						"options":       {Type: TypeArray, Items: &Schema{Type: TypeString}},
						"correctAnswer": {Type: TypeString},
					},
				},
			},
			"questions2Marks":  {Type: TypeArray, Items: writtenQuestionSchema()},
			"questions5Marks":  {Type: TypeArray, Items: writtenQuestionSchema()},
			"questions10Marks": {Type: TypeArray, Items: writtenQuestionSchema()},
			"questions15Marks": {Type: TypeArray, Items: writtenQuestionSchema()},
		},
	}
}

func topicQuizSchema() *Schema {
	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"question":      {Type: TypeString},
				"options":       {Type: TypeArray, Items: &Schema{Type: TypeString}},
				"correctAnswer": {Type: TypeString},
				"explanation":   {Type: TypeString},
			},
		},
	}
}

func pitchDeckSchema() *Schema {
	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"title":   {Type: TypeString},
				"content": {Type: TypeString},
				"visual":  {Type: TypeString},
			},
		},
	}
}

func examPaperSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"title":        {Type: TypeString},
			"duration":     {Type: TypeString},
			"maxMarks":     {Type: TypeNumber},
			"instructions": {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"sections": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"name":             {Type: TypeString},
						"marksPerQuestion": {Type: TypeNumber},
						"questions": {
							Type: TypeArray,
							Items: &Schema{
								Type: TypeObject,
								Properties: map[string]*Schema{
									"question": {Type: TypeString},
									"options":  {Type: TypeArray, Items: &Schema{Type: TypeString}, Description: "Only for MCQs"},
								},
							},
						},
					},
				},
			},
		},
	}
}

func evalReportSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"totalScore": {Type: TypeNumber},
			"maxScore":   {Type: TypeNumber},
			"feedback":   {Type: TypeString},
			"results": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"questionIndex": {Type: TypeNumber},
						"marksAwarded":  {Type: TypeNumber},
						"isCorrect":     {Type: TypeBoolean},
						"feedback":      {Type: TypeString},
					},
				},
			},
		},
	}
}

func improvementAreasSchema() *Schema {
	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"topic":      {Type: TypeString},
				"suggestion": {Type: TypeString},
				"priority":   {Type: TypeString},
			},
		},
	}
}
