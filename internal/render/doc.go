// Package render implements the template engine used for all generated
// artifacts. It supports {{ NAME }} substitution with filters, {% if %}
// conditionals, and {% for %} loops, and preserves the indentation of
// literal text around block tags so that indentation-sensitive output
// (GitHub Actions YAML) survives rendering intact.
package render
