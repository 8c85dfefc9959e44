package llms

// CallOption is a function that configures a CallOptions.
type CallOption func(*CallOptions)

// CallOptions is a set of options for calling models. Not all models support
// all options.
type CallOptions struct {
	// Model is the model to use.
	Model string
	// SystemPrompt is an optional system prompt sent apart from the history.
	SystemPrompt string
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int
	// Temperature is the temperature for sampling, between 0 and 1.
	// Nil leaves the provider default in place.
	Temperature *float64
	// Tools is a list of tools the model may request.
	Tools []Tool
}

// Tool is a tool declaration in the model API vocabulary.
type Tool struct {
	// Name is the name of the tool.
	Name string `json:"name"`
	// Description is a description of the tool.
	Description string `json:"description"`
	// InputSchema is the JSON schema of the tool input.
	InputSchema map[string]any `json:"input_schema"`
}

// Schema returns a copy of the input schema with "type" defaulted to "object".
func (t Tool) Schema() map[string]any {
	schema := make(map[string]any, len(t.InputSchema)+1)
	for k, v := range t.InputSchema {
		schema[k] = v
	}
	if _, ok := schema["type"]; !ok {
		schema["type"] = "object"
	}
	return schema
}

// SchemaExtras returns the members of the input schema other than
// "type", "properties" and "required", nil if there are none.
func (t Tool) SchemaExtras() map[string]any {
	var extras map[string]any
	for k, v := range t.InputSchema {
		switch k {
		case "type", "properties", "required":
			continue
		}
		if extras == nil {
			extras = map[string]any{}
		}
		extras[k] = v
	}
	return extras
}

// SchemaRequired returns the "required" member of the input schema.
func (t Tool) SchemaRequired() []string {
	switch r := t.InputSchema["required"].(type) {
	case []string:
		return r
	case []any:
		res := make([]string, 0, len(r))
		for _, v := range r {
			if s, ok := v.(string); ok {
				res = append(res, s)
			}
		}
		return res
	}
	return nil
}

// NewCallOptions returns CallOptions with defaults applied.
func NewCallOptions(model string, options ...CallOption) CallOptions {
	opts := CallOptions{
		Model: model,
	}
	for _, opt := range options {
		opt(&opts)
	}
	return opts
}

// WithSystemPrompt specifies the system prompt.
func WithSystemPrompt(prompt string) CallOption {
	return func(o *CallOptions) {
		o.SystemPrompt = prompt
	}
}

// WithMaxTokens specifies the max number of tokens to generate.
func WithMaxTokens(maxTokens int) CallOption {
	return func(o *CallOptions) {
		o.MaxTokens = maxTokens
	}
}

// WithTemperature specifies the model temperature, a hyperparameter that
// regulates the randomness, or creativity, of the AI's responses.
func WithTemperature(temperature float64) CallOption {
	return func(o *CallOptions) {
		o.Temperature = &temperature
	}
}

// WithTools will add an option to set the tools to use.
func WithTools(tools []Tool) CallOption {
	return func(o *CallOptions) {
		o.Tools = tools
	}
}
