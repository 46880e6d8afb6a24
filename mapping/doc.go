/*
Package mapping implements the tag cleaning rules for addressing
related OSM tags.

The rules are split into three parts. Classify assigns each tag to a
Category, based on the tag key alone. A Transformer applies the rule
for a single category and rewrites the key and/or value of the tag. A
rule can also delete the tag, or split it into two (house names of the
form "16 Danesfield Close" become a house number and a house name).

The Cleaner combines both with the relational output rules: keys with
problem characters are dropped, namespace prefixes are split off into
the type column, and split-off tags are merged into the element's tag
list without introducing duplicate keys.

The value and key replacement tables encode fixes discovered by
auditing one specific extract (south-west London/Surrey). They are
data, not logic: Corrections can be loaded from a YAML file to adapt
the rules to another extract.
*/
package mapping
